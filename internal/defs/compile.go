package defs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/mdp/internal/mdp"
)

//go:embed schema.cue
var schemaSource string

// ErrInvalidDefs is matched by every error describing a bad definitions
// file, including *CompileError and ValidationErrors.
var ErrInvalidDefs = errors.New("invalid parameter definitions")

// Set is a compiled definitions file.
type Set struct {
	Params     []mdp.Param     // In declaration order
	Migrations []mdp.Migration // Renames first, then obsoletes
}

// Load reads and compiles the definitions file at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions %s: %w", path, err)
	}
	return CompileBytes(data, path)
}

// CompileBytes compiles definitions source. filename is used in error
// positions.
func CompileBytes(data []byte, filename string) (*Set, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileIn(ctx, v)
}

// Compile converts a CUE value into a Set. The value is checked against
// the definitions schema first, so unknown top-level fields, unknown
// types and non-concrete defaults are rejected.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`param: nsteps: {type: "int", default: 0}`)
//	set, err := defs.Compile(v)
func Compile(v cue.Value) (*Set, error) {
	return compileIn(v.Context(), v)
}

func compileIn(ctx *cue.Context, v cue.Value) (*Set, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("defs: embedded schema: %w", err)
	}
	checked := schema.LookupPath(cue.ParsePath("#Defs")).Unify(v)
	if err := checked.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	// Read from the caller's value so positions point into its source.
	set := &Set{}
	var err error
	if set.Params, err = parseParams(v); err != nil {
		return nil, err
	}
	if set.Migrations, err = parseMigrations(v); err != nil {
		return nil, err
	}

	if errs := Validate(set); len(errs) > 0 {
		return nil, errs
	}
	return set, nil
}

// parseParams extracts the param struct in declaration order.
func parseParams(v cue.Value) ([]mdp.Param, error) {
	paramVal := v.LookupPath(cue.ParsePath("param"))
	if !paramVal.Exists() {
		return nil, nil
	}

	iter, err := paramVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var params []mdp.Param
	for iter.Next() {
		p, err := parseParam(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func parseParam(name string, v cue.Value) (mdp.Param, error) {
	field := "param." + name

	typeName, err := v.LookupPath(cue.ParsePath("type")).String()
	if err != nil {
		return mdp.Param{}, formatCUEError(err)
	}
	kind, ok := mdp.ParseKind(typeName)
	if !ok {
		return mdp.Param{}, &CompileError{
			Field:   field + ".type",
			Message: fmt.Sprintf("unknown parameter type %q", typeName),
			Pos:     v.Pos(),
		}
	}

	p := mdp.Param{Name: name, Kind: kind}
	def := v.LookupPath(cue.ParsePath("default"))

	switch kind {
	case mdp.KindInt, mdp.KindInt64:
		if def.Exists() {
			if p.Int, err = def.Int64(); err != nil {
				return p, &CompileError{
					Field:   field + ".default",
					Message: "default must be an integer",
					Pos:     def.Pos(),
				}
			}
		}
	case mdp.KindReal:
		if def.Exists() {
			if p.Real, err = def.Float64(); err != nil {
				return p, &CompileError{
					Field:   field + ".default",
					Message: "default must be a number",
					Pos:     def.Pos(),
				}
			}
		}
	case mdp.KindString:
		if def.Exists() {
			if p.String, err = def.String(); err != nil {
				return p, &CompileError{
					Field:   field + ".default",
					Message: "default must be a string",
					Pos:     def.Pos(),
				}
			}
		}
	case mdp.KindEnum:
		if def.Exists() {
			return p, &CompileError{
				Field:   field + ".default",
				Message: "enum parameters default to their first value",
				Pos:     def.Pos(),
			}
		}
		if p.Values, err = stringList(v.LookupPath(cue.ParsePath("values"))); err != nil {
			return p, err
		}
	case mdp.KindComment:
		textVal := v.LookupPath(cue.ParsePath("text"))
		if !textVal.Exists() {
			return p, &CompileError{
				Field:   field + ".text",
				Message: "comment parameters need a text",
				Pos:     v.Pos(),
			}
		}
		text, err := textVal.String()
		if err != nil {
			return p, formatCUEError(err)
		}
		p.Name = "\n; " + text
	}
	return p, nil
}

// parseMigrations reads renamed and obsolete.
func parseMigrations(v cue.Value) ([]mdp.Migration, error) {
	var migrations []mdp.Migration

	renamedVal := v.LookupPath(cue.ParsePath("renamed"))
	if renamedVal.Exists() {
		iter, err := renamedVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			newName, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			migrations = append(migrations, mdp.Migration{
				Old: iter.Label(),
				New: newName,
			})
		}
	}

	obsoleteVal := v.LookupPath(cue.ParsePath("obsolete"))
	if obsoleteVal.Exists() {
		names, err := stringList(obsoleteVal)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			migrations = append(migrations, mdp.Migration{Old: name})
		}
	}
	return migrations, nil
}

func stringList(v cue.Value) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError is a definitions error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *CompileError) Unwrap() error {
	return ErrInvalidDefs
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefs, err)
	}

	first := errs[0]
	ce := &CompileError{Field: "cue", Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
