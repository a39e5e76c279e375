package infinity

import (
	"errors"
	"testing"
	"time"
)

func mustClass(t *testing.T, name string) Component {
	t.Helper()
	c, err := Class(name)
	if err != nil {
		t.Fatalf("Class(%q): %v", name, err)
	}
	return c
}

func mustAttribute(t *testing.T, name string) Component {
	t.Helper()
	c, err := Attribute(name)
	if err != nil {
		t.Fatalf("Attribute(%q): %v", name, err)
	}
	return c
}

func mustIndex(t *testing.T, i int64) Component {
	t.Helper()
	c, err := Index(i)
	if err != nil {
		t.Fatalf("Index(%d): %v", i, err)
	}
	return c
}

func TestTokens(t *testing.T) {
	tests := []struct {
		in   Component
		want string
	}{
		{Long(5), "5"},
		{Long(-7), "-7"},
		{Double(5), "5.0"},
		{Double(2.5), "2.5"},
		{Double(-0.25), "-0.25"},
		{Float(5), "5.0f"},
		{Float(1.5), "1.5f"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("hi"), `"hi"`},
		{String(""), `""`},
		{Chars("hi"), `Chars("hi")`},
		{Bytes([]byte{0xA6, 0x99}), "Bytes(A6_99)"},
		{Bytes(nil), "Bytes()"},
		{ByteString([]byte{0x00, 0xFF}), "ByteString(00_FF)"},
		{Date(time.Date(2024, 3, 9, 12, 30, 15, 250_000_000, time.UTC)), "2024-03-09T12:30:15.250Z"},
		{Date(time.Date(2024, 3, 9, 12, 0, 0, 0, time.FixedZone("", 5*3600))), "2024-03-09T12:00:00.000+05:00"},
	}
	for _, tt := range tests {
		if got := tt.in.Token(); got != tt.want {
			t.Errorf("Token() = %q, want %q", got, tt.want)
		}
	}

	cl := mustClass(t, "MyClass")
	if got := cl.Token(); got != "MyClass" {
		t.Errorf("class token = %q, want %q", got, "MyClass")
	}
	at := mustAttribute(t, "myAttribute")
	if got := at.Token(); got != "myAttribute" {
		t.Errorf("attribute token = %q, want %q", got, "myAttribute")
	}
	ix := mustIndex(t, 3)
	if got := ix.Token(); got != "[3]" {
		t.Errorf("index token = %q, want %q", got, "[3]")
	}
}

func TestNameValidation(t *testing.T) {
	for _, name := range []string{"A", "Ec", "My_Class-1.x"} {
		if _, err := Class(name); err != nil {
			t.Errorf("Class(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "lower", "9Class", "With Space", "_X"} {
		if _, err := Class(name); !errors.Is(err, ErrType) {
			t.Errorf("Class(%q) err = %v, want ErrType", name, err)
		}
	}
	for _, name := range []string{"a", "att", "my_att-1.x"} {
		if _, err := Attribute(name); err != nil {
			t.Errorf("Attribute(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "Upper", "9att", "a b"} {
		if _, err := Attribute(name); !errors.Is(err, ErrType) {
			t.Errorf("Attribute(%q) err = %v, want ErrType", name, err)
		}
	}
	if _, err := Index(-1); !errors.Is(err, ErrType) {
		t.Errorf("Index(-1) err = %v, want ErrType", err)
	}
}

func TestCompareAcrossKinds(t *testing.T) {
	ordered := []Component{
		mustClass(t, "Aaa"),
		mustAttribute(t, "aaa"),
		String("zzz"),
		Bool(true),
		Float(1e30),
		Double(-1e300),
		Long(-9),
		Date(time.Unix(0, 0)),
		Bytes([]byte{0xFF}),
		ByteString([]byte{0x00}),
		Chars("a"),
		mustIndex(t, 0),
	}
	for i, a := range ordered {
		for j, b := range ordered {
			got := a.Compare(b)
			switch {
			case i < j && got >= 0:
				t.Errorf("Compare(%v, %v) = %d, want < 0", a, b, got)
			case i > j && got <= 0:
				t.Errorf("Compare(%v, %v) = %d, want > 0", a, b, got)
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want 0", a, b, got)
			}
		}
	}
}

func TestCompareWithinKind(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		a, b Component
	}{
		{Long(2), Long(10)},
		{Double(1.5), Double(2.5)},
		{Float(-1), Float(1)},
		{Bool(false), Bool(true)},
		{String("abc"), String("abd")},
		{Date(early), Date(late)},
		{Bytes([]byte{0xFF}), Bytes([]byte{0x00, 0x00})}, // shorter first
		{Bytes([]byte{1, 2}), Bytes([]byte{1, 3})},
		{ByteString([]byte{0x00, 0x02}), ByteString([]byte{0x01})}, // byte-wise
		{mustIndex(t, 1), mustIndex(t, 2)},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got >= 0 {
			t.Errorf("Compare(%v, %v) = %d, want < 0", tt.a, tt.b, got)
		}
		if got := tt.b.Compare(tt.a); got <= 0 {
			t.Errorf("Compare(%v, %v) = %d, want > 0", tt.b, tt.a, got)
		}
	}
}

func TestDateTruncatesToMillis(t *testing.T) {
	fine := Date(time.Date(2024, 3, 9, 12, 30, 15, 250_123_456, time.UTC))
	coarse := Date(time.Date(2024, 3, 9, 12, 30, 15, 250_000_000, time.UTC))
	if got := fine.Token(); got != "2024-03-09T12:30:15.250Z" {
		t.Errorf("Token = %q, want %q", got, "2024-03-09T12:30:15.250Z")
	}
	if !fine.Equal(coarse) {
		t.Error("sub-millisecond precision survived construction")
	}
	back, err := Unquote(`"_`+fine.Token()+`"`, false)
	if err != nil {
		t.Fatalf("Unquote: %v", err)
	}
	if !back.C.Equal(fine) {
		t.Errorf("round trip gave %v, want %v", back.C, fine)
	}
}

func TestDateEqualityIsInstant(t *testing.T) {
	utc := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	offset := utc.In(time.FixedZone("", 2*3600))
	a, b := Date(utc), Date(offset)
	if !a.Equal(b) {
		t.Errorf("dates at the same instant compare unequal: %v vs %v", a, b)
	}
	if a.Token() == b.Token() {
		t.Errorf("tokens should keep their zone: both %q", a.Token())
	}
}

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"", []byte{}, false},
		{"A6", []byte{0xA6}, false},
		{"A6_99", []byte{0xA6, 0x99}, false},
		{"00_FF_10", []byte{0x00, 0xFF, 0x10}, false},
		{"a6", nil, true},   // lowercase
		{"A699", nil, true}, // missing separator
		{"A6_9", nil, true}, // odd digits
		{"A6_", nil, true},
		{"G0", nil, true},
	}
	for _, tt := range tests {
		got, err := hexToBytes(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrType) {
				t.Errorf("hexToBytes(%q) err = %v, want ErrType", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("hexToBytes(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("hexToBytes(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("hexToBytes(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestBytesAreCopied(t *testing.T) {
	buf := []byte{1, 2, 3}
	c := Bytes(buf)
	buf[0] = 99
	if got := c.Data(); got[0] != 1 {
		t.Errorf("Bytes shares the caller's slice: %v", got)
	}
	c.Data()[1] = 99
	if got := c.Data(); got[1] != 2 {
		t.Errorf("Data() exposes the internal slice: %v", got)
	}
}
