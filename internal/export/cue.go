package export

import (
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"

	"github.com/roach88/mdp/internal/mdp"
)

// CUE renders kvs as a CUE file of string fields in store order.
func CUE(kvs []mdp.KeyValue) ([]byte, error) {
	f := &ast.File{}
	for _, kv := range kvs {
		f.Decls = append(f.Decls, &ast.Field{
			Label: label(kv.Name),
			Value: ast.NewString(kv.Value),
		})
	}
	return format.Node(f)
}

// label returns a bare identifier for plain names and a quoted string
// otherwise. Names starting with '_' or '#' would be hidden fields or
// definitions, so they are quoted too.
func label(name string) ast.Label {
	if isPlainIdent(name) && !cueKeywords[name] {
		return ast.NewIdent(name)
	}
	return ast.NewString(name)
}

var cueKeywords = map[string]bool{
	"true": true, "false": true, "null": true,
	"if": true, "for": true, "in": true, "let": true,
	"import": true, "package": true, "func": true,
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return true
}
