package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped newline", `a\nb`, "a\nb"},
		{"escaped crlf", `a\r\nb`, "a\nb"},
		{"windows endings", "a\r\nb\rc", "a\nb\nc"},
		{"collapse blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"keeps neq", `x \neq y`, `x \neq y`},
		{"keeps nabla and notin", `\nabla f, x \notin A`, `\nabla f, x \notin A`},
		{"newline before word", `fin\nDébut`, "fin\nDébut"},
		{"latex line break kept", `a \\ b`, `a \\ b`},
		{"keeps right", `\right)`, `\right)`},
		{"trims", "  \n a \n ", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeText(got), "not idempotent")
		})
	}
}

func TestWrapDisplayMath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x^2", "$$\nx^2\n$$"},
		{"$x^2$", "$$\nx^2\n$$"},
		{"$$x^2$$", "$$\nx^2\n$$"},
		{"$$\nx^2\n$$", "$$\nx^2\n$$"},
		{`\[x^2\]`, "$$\nx^2\n$$"},
		{"$a$ + $b$", "$$\n$a$ + $b$\n$$"},
		{`\[ a \] + \[ b \]`, "$$\n\\[ a \\] + \\[ b \\]\n$$"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := WrapDisplayMath(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Equal(t, got, WrapDisplayMath(got))
			}
		})
	}
}
