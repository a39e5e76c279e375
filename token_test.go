package infinity

import (
	"errors"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{``, nil},
		{`   `, nil},
		{`{}`, []string{"{", "}"}},
		{`{ "a": 1 }`, []string{"{", `"a"`, ":", "1", "}"}},
		{`[true,null]`, []string{"[", "true", ",", "null", "]"}},
		{`"with \" escape"`, []string{`"with \" escape"`}},
		{`_5 -2.5f`, []string{"_5", "-2.5f"}},
		// An unquoted date token holds together despite its colons.
		{`2024-03-09T12:30:15.250Z: 1`, []string{"2024-03-09T12:30:15.250Z", ":", "1"}},
		{`2024-03-09T12:00:00.000+05:00`, []string{"2024-03-09T12:00:00.000+05:00"}},
		// A partial date match backtracks into plain tokens.
		{`2024-03-09: 1`, []string{"2024-03-09", ":", "1"}},
		{`Bytes(A6_99)`, []string{"Bytes(A6_99)"}},
		{"\t{\r\n}", []string{"{", "}"}},
	}
	for _, tt := range tests {
		got, err := tokenize(tt.in)
		if err != nil {
			t.Errorf("tokenize(%q): %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenizeLexicalErrors(t *testing.T) {
	for _, in := range []string{`"unterminated`, `"bad \q escape"`, `"trunc \`} {
		if _, err := tokenize(in); !errors.Is(err, ErrLexical) {
			t.Errorf("tokenize(%q) err = %v, want ErrLexical", in, err)
		}
	}
}
