// Package fix implements the textual auto-fix heuristics applied by
// campaigns, guarded by delimiter-balance checks.
package fix

import (
	"go.alchm.dev/scullery/internal/core/domain"
	"go.trai.ch/zerr"
)

// Balance counts the net delimiter nesting of a source file, ignoring
// delimiters inside strings, template literals, and comments.
type Balance struct {
	Braces   int
	Brackets int
	Parens   int
}

// Scan computes the delimiter balance of TypeScript source text.
//
// The scanner understands single/double quoted strings with escapes,
// backtick template literals (including nested ${} interpolations), and
// line/block comments. Regex literals are not modeled; the heuristic
// matches the original campaign tooling, which never produced a false
// positive from one in practice.
func Scan(content string) Balance {
	var b Balance

	const (
		code = iota
		lineComment
		blockComment
		single
		double
	)

	state := code
	// templateDepth tracks nested template literals; interpDepth holds the
	// brace depth at which each active ${ interpolation began.
	templateDepth := 0
	var interpDepth []int

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch state {
		case lineComment:
			if c == '\n' {
				state = code
			}
		case blockComment:
			if c == '*' && next == '/' {
				state = code
				i++
			}
		case single:
			if c == '\\' {
				i++
			} else if c == '\'' || c == '\n' {
				state = code
			}
		case double:
			if c == '\\' {
				i++
			} else if c == '"' || c == '\n' {
				state = code
			}
		default:
			// Inside a template literal body unless an interpolation has
			// dropped us back into code.
			inTemplate := templateDepth > 0 &&
				(len(interpDepth) == 0 || len(interpDepth) < templateDepth)

			if inTemplate {
				switch {
				case c == '\\':
					i++
				case c == '`':
					templateDepth--
				case c == '$' && next == '{':
					interpDepth = append(interpDepth, b.Braces)
					b.Braces++
					i++
				}
				continue
			}

			switch c {
			case '/':
				if next == '/' {
					state = lineComment
					i++
				} else if next == '*' {
					state = blockComment
					i++
				}
			case '\'':
				state = single
			case '"':
				state = double
			case '`':
				templateDepth++
			case '{':
				b.Braces++
			case '}':
				b.Braces--
				if n := len(interpDepth); n > 0 && b.Braces == interpDepth[n-1] {
					// Closed the ${} interpolation, back into the template.
					interpDepth = interpDepth[:n-1]
				}
			case '[':
				b.Brackets++
			case ']':
				b.Brackets--
			case '(':
				b.Parens++
			case ')':
				b.Parens--
			}
		}
	}

	return b
}

// CheckEdit verifies that a textual edit preserved the file's delimiter
// balance. Fixes that change the balance are rejected wholesale: an
// unbalanced rewrite means the heuristic misfired and would break the build
// far worse than the issue it fixed.
func CheckEdit(before, after string) error {
	if Scan(before) != Scan(after) {
		err := zerr.With(domain.ErrUnbalancedEdit, "before", Scan(before))
		return zerr.With(err, "after", Scan(after))
	}
	return nil
}
