package render

import (
	"regexp"
	"strings"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// LaTeX words starting with "n" that must survive escaped-newline conversion.
var nCommands = map[string]bool{
	"ne": true, "neq": true, "nabla": true, "notin": true, "not": true,
	"nu": true, "neg": true, "ni": true, "nexists": true, "newline": true,
	"newpage": true, "noindent": true, "nleq": true, "ngeq": true, "nmid": true,
	"nparallel": true, "nsubseteq": true, "nsupseteq": true, "nrightarrow": true,
	"nleftarrow": true, "nLeftrightarrow": true, "nRightarrow": true, "normalsize": true,
}

// NormalizeText converts escaped newlines to real ones, unifies line endings to
// "\n", collapses runs of blank lines to a single blank line and trims the result.
// It is idempotent.
func NormalizeText(s string) string {
	s = unescapeNewlines(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func collapseBlankLines(s string) string {
	return excessNewlines.ReplaceAllString(s, "\n\n")
}

func unescapeNewlines(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		next := s[i+1]
		switch {
		case next == '\\':
			// LaTeX line break, keep both
			b.WriteString(`\\`)
			i += 2
		case next == 'r' && strings.HasPrefix(s[i+2:], `\n`) && !isCommandWord(s[i+3:]):
			b.WriteByte('\n')
			i += 4
		case next == 'n' && !isCommandWord(s[i+1:]):
			b.WriteByte('\n')
			i += 2
		default:
			b.WriteByte('\\')
			i++
		}
	}
	return b.String()
}

// isCommandWord reports whether the letters at the start of rest form a known
// n-command, e.g. "neq" in "neq 0".
func isCommandWord(rest string) bool {
	end := 0
	for end < len(rest) && isLetter(rest[end]) {
		end++
	}
	return nCommands[rest[:end]]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// WrapDisplayMath strips any existing math delimiters ($$…$$, $…$, \[…\]) and
// wraps the formula in display-math delimiters exactly once.
func WrapDisplayMath(formula string) string {
	f := stripMathDelimiters(formula)
	if f == "" {
		return ""
	}
	return "$$\n" + f + "\n$$"
}

func stripMathDelimiters(f string) string {
	f = strings.TrimSpace(f)
	for {
		switch {
		case len(f) >= 4 && strings.HasPrefix(f, "$$") && strings.HasSuffix(f, "$$") && !strings.Contains(f[2:len(f)-2], "$$"):
			f = strings.TrimSpace(f[2 : len(f)-2])
		case len(f) >= 4 && strings.HasPrefix(f, `\[`) && strings.HasSuffix(f, `\]`) &&
			!strings.Contains(f[2:len(f)-2], `\]`) && !strings.Contains(f[2:len(f)-2], `\[`):
			f = strings.TrimSpace(f[2 : len(f)-2])
		case len(f) >= 2 && strings.HasPrefix(f, "$") && strings.HasSuffix(f, "$") && !strings.Contains(f[1:len(f)-1], "$"):
			f = strings.TrimSpace(f[1 : len(f)-1])
		default:
			return f
		}
	}
}
