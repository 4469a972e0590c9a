package defs

import (
	"fmt"
	"strings"

	"github.com/roach88/mdp/internal/mdp"
)

// Validation error codes (E100-E199)
const (
	ErrDuplicateParam   = "E101" // two params share a name
	ErrEnumNoValues     = "E102" // enum without values
	ErrEnumDuplicate    = "E103" // enum lists the same value twice
	ErrEmptyName        = "E104" // empty parameter or migration name
	ErrRenameSelf       = "E105" // old and new name are the same
	ErrRenameCycle      = "E106" // renames loop back to their start
	ErrMigratedParam    = "E107" // a declared param is renamed away or obsolete
	ErrCommentDuplicate = "E108" // two comment params share a text
)

// ValidationError is one problem found in a compiled Set.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is returned by Compile when Validate finds problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (errs ValidationErrors) Unwrap() error {
	return ErrInvalidDefs
}

// Validate checks a Set for problems the schema cannot express. Names are
// compared with the parameter name-equality rule. Returns every problem
// found, not just the first.
func Validate(set *Set) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]string)
	for i, p := range set.Params {
		field := fmt.Sprintf("param[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "parameter name must be non-empty",
				Code:    ErrEmptyName,
			})
			continue
		}

		key := mdp.NameKey(p.Name)
		if prev, ok := seen[key]; ok {
			code := ErrDuplicateParam
			if p.Kind == mdp.KindComment {
				code = ErrCommentDuplicate
			}
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is the same parameter as %q", p.Name, prev),
				Code:    code,
			})
		}
		seen[key] = p.Name

		if p.Kind == mdp.KindEnum {
			errs = append(errs, validateEnum(field, p)...)
		}
	}

	errs = append(errs, validateMigrations(set.Migrations, seen)...)
	return errs
}

func validateEnum(field string, p mdp.Param) []ValidationError {
	if len(p.Values) == 0 {
		return []ValidationError{{
			Field:   field + ".values",
			Message: fmt.Sprintf("enum %q needs at least one value", p.Name),
			Code:    ErrEnumNoValues,
		}}
	}

	var errs []ValidationError
	values := make(map[string]bool)
	for j, v := range p.Values {
		key := mdp.NameKey(v)
		if values[key] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.values[%d]", field, j),
				Message: fmt.Sprintf("enum %q lists %q twice", p.Name, v),
				Code:    ErrEnumDuplicate,
			})
		}
		values[key] = true
	}
	return errs
}

func validateMigrations(migrations []mdp.Migration, params map[string]string) []ValidationError {
	var errs []ValidationError
	next := make(map[string]string)

	for i, m := range migrations {
		field := fmt.Sprintf("migration[%d]", i)
		if strings.TrimSpace(m.Old) == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "migrated name must be non-empty",
				Code:    ErrEmptyName,
			})
			continue
		}

		oldKey := mdp.NameKey(m.Old)
		if name, ok := params[oldKey]; ok {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is declared as a parameter and migrated away", name),
				Code:    ErrMigratedParam,
			})
		}
		if m.New == "" {
			continue
		}
		if mdp.SameName(m.Old, m.New) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%q is renamed to itself", m.Old),
				Code:    ErrRenameSelf,
			})
			continue
		}
		next[oldKey] = mdp.NameKey(m.New)
	}

	// Each name renames to at most one other, so a walk from every start
	// either ends or returns to its start.
	reported := make(map[string]bool)
	for i, m := range migrations {
		start := mdp.NameKey(m.Old)
		if _, ok := next[start]; !ok || reported[start] {
			continue
		}
		path := []string{start}
		cur := start
		for steps := 0; steps < len(next); steps++ {
			n, ok := next[cur]
			if !ok {
				break
			}
			path = append(path, n)
			if n == start {
				for _, k := range path {
					reported[k] = true
				}
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("migration[%d]", i),
					Message: "rename cycle: " + strings.Join(path, " -> "),
					Code:    ErrRenameCycle,
				})
				break
			}
			cur = n
		}
	}
	return errs
}
