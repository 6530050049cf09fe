// Package latex turns model output that mixes JSON and LaTeX into decodable JSON.
//
// Models answer with JSON whose string values carry LaTeX. They routinely leave raw
// newlines inside string literals and write single backslashes in front of macro
// names, so `\frac` reaches the decoder as a form feed followed by "rac".
package latex

import (
	"sort"
	"strings"
)

// commands is the closed table of macros whose first letter collides with a JSON
// escape introducer (b, f, n, r, t) or that models commonly emit unescaped.
var commands = []string{
	"begin", "binom", "beta", "bar",
	"frac", "forall",
	"neq", "nabla", "notin",
	"rho", "right", "rightarrow",
	"times", "text", "theta", "tan", "tau", "top", "triangle",
	"mathbf", "mathbb",
	"bigcap", "bigcup",
}

func init() {
	// longest first so "rightarrow" wins over "right"
	sort.SliceStable(commands, func(i, j int) bool {
		return len(commands[i]) > len(commands[j])
	})
}

// Commands returns a copy of the macro table used by Repair.
func Commands() []string {
	out := make([]string, len(commands))
	copy(out, commands)
	return out
}

// Repair rewrites raw so that every string literal it contains is a valid JSON
// string payload: control characters inside literals become escapes and known
// macros get their backslash doubled. Text outside literals is left untouched and
// unbalanced quotes are not corrected.
func Repair(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + len(raw)/8)

	inString := false
	for i := 0; i < len(raw); {
		c := raw[i]

		if c == '"' {
			if precedingBackslashes(raw, i)%2 == 0 {
				inString = !inString
			}
			b.WriteByte(c)
			i++
			continue
		}

		if !inString {
			b.WriteByte(c)
			i++
			continue
		}

		switch c {
		case '\\':
			if i+1 < len(raw) && raw[i+1] == '\\' {
				b.WriteString(`\\`)
				i += 2
				continue
			}
			if cmd := matchCommand(raw[i+1:]); cmd != "" {
				b.WriteString(`\\`)
				b.WriteString(cmd)
				i += 1 + len(cmd)
				continue
			}
			b.WriteByte(c)
			i++
		case '\n':
			b.WriteString(`\n`)
			i++
		case '\r':
			b.WriteString(`\r`)
			i++
		case '\t':
			b.WriteString(`\t`)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

func precedingBackslashes(s string, i int) int {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n
}

func matchCommand(rest string) string {
	for _, cmd := range commands {
		if strings.HasPrefix(rest, cmd) {
			return cmd
		}
	}
	return ""
}
