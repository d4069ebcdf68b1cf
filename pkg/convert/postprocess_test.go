package convert

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses newline runs",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb\n",
		},
		{
			name: "pads heading with blank line",
			in:   "text\n## Heading\nbody",
			want: "text\n\n## Heading\nbody\n",
		},
		{
			name: "heading at start is untouched",
			in:   "# Top\nbody",
			want: "# Top\nbody\n",
		},
		{
			name: "strips trailing horizontal whitespace",
			in:   "a   \nb\t\nc",
			want: "a\nb\nc\n",
		},
		{
			name: "single trailing newline",
			in:   "a\n\n\n",
			want: "a\n",
		},
		{
			name: "strips leading blank lines",
			in:   "\n\n\na",
			want: "a\n",
		},
		{
			name: "whitespace-only lines do not survive as blank runs",
			in:   "a\n  \n\t\n\nb",
			want: "a\n\nb\n",
		},
		{
			name: "empty input",
			in:   "",
			want: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"a\n\n\n\nb\n# h\nc   \n\n\n",
		"\n\n# top\n\n\n\ntext  \t\nmore\n",
		"| a |\n| --- |\n\n\n\n> q\n>\n> r\n",
		"",
		"plain",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalize_NeverThreeNewlines(t *testing.T) {
	inputs := []string{
		"a\n\n\n\n\n\nb",
		"a\n \n \n \nb",
		"x\n\n\n# h\n\n\n\ny",
	}
	for _, in := range inputs {
		got := Normalize(in)
		if strings.Contains(got, "\n\n\n") {
			t.Errorf("Normalize(%q) contains a 3+ newline run: %q", in, got)
		}
	}
}
