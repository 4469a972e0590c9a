package mdp

import "strings"

// CommentSign starts a comment that runs to the end of the line.
const CommentSign = ';'

// LineKind classifies one raw input line.
type LineKind int

const (
	// LineEmpty is blank or comment-only.
	LineEmpty LineKind = iota
	// LineNoAssignment has text but no '='.
	LineNoAssignment
	// LineEmptyName has nothing left of '='.
	LineEmptyName
	// LineEmptyValue has nothing right of '='.
	LineEmptyValue
	// LineAssignment has a non-empty name and value.
	LineAssignment
)

func (k LineKind) String() string {
	switch k {
	case LineEmpty:
		return "empty"
	case LineNoAssignment:
		return "no assignment"
	case LineEmptyName:
		return "empty left hand side"
	case LineEmptyValue:
		return "empty right hand side"
	case LineAssignment:
		return "assignment"
	default:
		return "unknown"
	}
}

// SplitLine strips the comment and surrounding whitespace from line and
// splits it at the first '='. name and value are only meaningful when kind
// is LineAssignment.
func SplitLine(line string) (name, value string, kind LineKind) {
	if i := strings.IndexByte(line, CommentSign); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		if line == "" {
			return "", "", LineEmpty
		}
		return "", "", LineNoAssignment
	}

	name = strings.TrimSpace(line[:eq])
	if name == "" {
		return "", "", LineEmptyName
	}
	value = strings.TrimSpace(line[eq+1:])
	if value == "" {
		return "", "", LineEmptyValue
	}
	return name, value, LineAssignment
}
