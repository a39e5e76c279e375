package infinity

import (
	"testing"
)

func TestWriteCompact(t *testing.T) {
	in := `{"_att":"hi","_Ec":{"_5":"_5.0"}}`
	e, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Text(e, Format{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := `{ "_att": "hi", "_Ec": { "_5": 5.0 } }`
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestWriteExtended(t *testing.T) {
	e, err := Parse(`{ "_att": "hi", "_Ec": { "_5": 5.0 } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Text(e, Format{Extended: true})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := `{ att: "hi", Ec: { 5: 5.0 } }`
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestWriteIndented(t *testing.T) {
	e, err := Parse(`{ "_att": "hi", "_Ec": { "_5": 5.0 } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Text(e, Format{Indent: 4})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "{\r\n" +
		"    \"_att\": \"hi\",\r\n" +
		"    \"_Ec\": {\r\n" +
		"        \"_5\": 5.0\r\n" +
		"    }\r\n" +
		"}"
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestWriteEmptyContainers(t *testing.T) {
	tests := []struct {
		in   Element
		want string
	}{
		{NewObject(), "{ }"},
		{NewList(), "[ ]"},
		{Null, "null"},
		{nil, "null"},
		{Value{String("hi")}, `"hi"`},
	}
	for _, tt := range tests {
		got, err := Text(tt.in, Format{})
		if err != nil {
			t.Errorf("Text(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Text = %q, want %q", got, tt.want)
		}
	}
}

func TestWriteList(t *testing.T) {
	list := NewList().
		Add(Value{Long(1)}).
		Add(Value{Bool(true)}).
		Add(nil)
	got, err := Text(list, Format{})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := `[ "_1", true, null ]`
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

// Writing and re-parsing must give back a structurally equal tree, and a
// second write of the re-parsed tree must be byte-identical.
func TestWriteParseRoundTrip(t *testing.T) {
	inputs := []string{
		`{ "_att": "hi", "_Ec": { "_5": 5.0 } }`,
		`{ "__stuffed": "__value", "plain": null }`,
		`[ "_Bytes(A6_99)", "_2024-03-09T12:30:15.250Z", 2.5, "_2.5f" ]`,
		`{ "_Chars(\"cd\")": [ ] }`,
		`{ }`,
	}
	formats := []Format{
		{},
		{Indent: 4},
		{Extended: true},
		{Extended: true, Indent: 2},
	}
	for _, in := range inputs {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		for _, f := range formats {
			first, err := Text(e, f)
			if err != nil {
				t.Fatalf("Text(%q, %+v): %v", in, f, err)
			}
			var back Element
			if f.Extended {
				back, err = ParseExtended(first)
			} else {
				back, err = Parse(first)
			}
			if err != nil {
				t.Errorf("re-parse of %q failed: %v", first, err)
				continue
			}
			if !Equal(e, back) {
				t.Errorf("round trip of %q via %q changed the tree", in, first)
			}
			second, err := Text(back, f)
			if err != nil {
				t.Fatalf("second Text: %v", err)
			}
			if first != second {
				t.Errorf("formatting is not idempotent: %q then %q", first, second)
			}
		}
	}
}
