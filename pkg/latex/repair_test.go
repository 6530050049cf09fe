package latex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeString(t *testing.T, literal string) string {
	t.Helper()
	var out string
	require.NoError(t, json.Unmarshal([]byte(literal), &out), "literal: %s", literal)
	return out
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "outside literal untouched",
			raw:  "{\n\t\"a\": 1\n}",
			want: "{\n\t\"a\": 1\n}",
		},
		{
			name: "raw newline and tab inside literal",
			raw:  "\"line one\nline\ttwo\r\"",
			want: `"line one\nline\ttwo\r"`,
		},
		{
			name: "known command doubled",
			raw:  `"\frac{a}{b}"`,
			want: `"\\frac{a}{b}"`,
		},
		{
			name: "longest command wins",
			raw:  `"x \rightarrow y"`,
			want: `"x \\rightarrow y"`,
		},
		{
			name: "already escaped backslash kept",
			raw:  `"\\neq"`,
			want: `"\\neq"`,
		},
		{
			name: "genuine escapes kept",
			raw:  `"say \"hi\" \u00e9 a\/b"`,
			want: `"say \"hi\" \u00e9 a\/b"`,
		},
		{
			name: "unknown macro left alone",
			raw:  `"\sqrt{2}"`,
			want: `"\sqrt{2}"`,
		},
		{
			name: "command prefix of longer word",
			raw:  `"\textbf{x} \tanh"`,
			want: `"\\textbf{x} \\tanh"`,
		},
		{
			name: "unbalanced quote not corrected",
			raw:  "{\"a\": \"open\n",
			want: "{\"a\": \"open\\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repair(tt.raw))
		})
	}
}

func TestRepairEscapedQuoteAndNewline(t *testing.T) {
	raw := "\"He said \\\"\\\\neq\\\" then\nstopped\""

	repaired := Repair(raw)

	assert.Equal(t, "He said \"\\neq\" then\nstopped", decodeString(t, repaired))
}

func TestRepairReconstructsMarkup(t *testing.T) {
	inputs := []string{
		`\frac{1}{2} \neq \beta`,
		`\begin{pmatrix} a & b`,
		`\forall x, \mathbb{R}, \theta \times \tau`,
		`\bigcup_i A_i \bigcap B \notin \nabla f`,
		`\binom{n}{k} \bar{x} \top \triangle \rho \tan`,
		`\text{si } x \rightarrow 0, \right)`,
		`\mathbf{v} = 2u + \mathbb{Z}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			raw := `"` + in + `"`
			assert.Equal(t, in, decodeString(t, Repair(raw)))
		})
	}
}

func TestRepairControlCharacterSafety(t *testing.T) {
	raw := "{\"intro\": \"a\n\tb\r\nc\", \"list\": [\"x\ty\"]}"

	doc, err := Decode(Repair(raw))

	require.NoError(t, err)
	assert.Equal(t, "a\n\tb\r\nc", doc["intro"])
	assert.Equal(t, []any{"x\ty"}, doc["list"])
}

func TestCommandsLongestFirst(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	for i := 1; i < len(cmds); i++ {
		assert.GreaterOrEqual(t, len(cmds[i-1]), len(cmds[i]))
	}
}
