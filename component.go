// The twelve component types.
//
// A Component is one typed primitive value as the server stores it: the
// building block of Items, object keys and leaf values. Each kind has a
// fixed rank that defines the server's total sort order across kinds, and a
// canonical token spelling used in Items, URL paths and extended JSON.
package infinity

import (
	"bytes"
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies one of the twelve component types. The numeric value is
// the sort rank: components of different kinds order by rank alone.
type Kind int

const (
	KindClass      Kind = 1  // class name, [A-Z][A-Za-z0-9._-]*
	KindAttribute  Kind = 2  // attribute name, [a-z][A-Za-z0-9._-]*
	KindString     Kind = 3  // UTF-8 string
	KindBool       Kind = 4  // boolean
	KindFloat      Kind = 5  // 32-bit float, token suffixed 'f'
	KindDouble     Kind = 6  // 64-bit double
	KindLong       Kind = 7  // 64-bit integer
	KindDate       Kind = 8  // timestamp, ISO-8601 with millis
	KindBytes      Kind = 9  // raw byte array, sorts shorter-first
	KindByteString Kind = 10 // byte array that sorts lexicographically
	KindChars      Kind = 11 // char array
	KindIndex      Kind = 12 // list position marker, token [n]
)

var kindNames = map[Kind]string{
	KindClass:      "class",
	KindAttribute:  "attribute",
	KindString:     "string",
	KindBool:       "boolean",
	KindFloat:      "float",
	KindDouble:     "double",
	KindLong:       "long",
	KindDate:       "date",
	KindBytes:      "bytes",
	KindByteString: "bytestring",
	KindChars:      "chars",
	KindIndex:      "index",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// nameRegexp covers both class and attribute names; the first letter's case
// decides which of the two a name belongs to.
var nameRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// isClassName reports whether s is a legal class name.
func isClassName(s string) bool {
	return nameRegexp.MatchString(s) && s[0] >= 'A' && s[0] <= 'Z'
}

// isAttributeName reports whether s is a legal attribute name.
func isAttributeName(s string) bool {
	return nameRegexp.MatchString(s) && s[0] >= 'a' && s[0] <= 'z'
}

// Component is one typed value of the twelve kinds. The zero value is
// invalid; construct components with the typed constructors. Components are
// immutable and safe to share.
type Component struct {
	kind Kind
	s    string    // class/attribute name, string, chars
	b    bool      // bool
	f    float64   // float (rounded to 32 bits), double
	i    int64     // long, index
	t    time.Time // date
	raw  []byte    // bytes, bytestring
}

// Class makes a class-name component. Names match [A-Z][A-Za-z0-9._-]*.
func Class(name string) (Component, error) {
	if !isClassName(name) {
		return Component{}, fmt.Errorf("%w: class name must match [A-Z][A-Za-z0-9._-]*: %q", ErrType, name)
	}
	return Component{kind: KindClass, s: name}, nil
}

// Attribute makes an attribute-name component. Names match
// [a-z][A-Za-z0-9._-]*.
func Attribute(name string) (Component, error) {
	if !isAttributeName(name) {
		return Component{}, fmt.Errorf("%w: attribute name must match [a-z][A-Za-z0-9._-]*: %q", ErrType, name)
	}
	return Component{kind: KindAttribute, s: name}, nil
}

// String makes a string component.
func String(s string) Component {
	return Component{kind: KindString, s: s}
}

// Bool makes a boolean component.
func Bool(b bool) Component {
	return Component{kind: KindBool, b: b}
}

// Float makes a 32-bit float component. Its token always carries a decimal
// point and a trailing 'f', so 5 renders as 5.0f.
func Float(f float32) Component {
	return Component{kind: KindFloat, f: float64(f)}
}

// Double makes a 64-bit double component. Its token always carries a
// decimal point, so 5 renders as 5.0. Bare JSON numbers decode as Double;
// use Long or Float explicitly for the other numeric kinds.
func Double(f float64) Component {
	return Component{kind: KindDouble, f: f}
}

// Long makes a 64-bit integer component.
func Long(i int64) Component {
	return Component{kind: KindLong, i: i}
}

// Date makes a timestamp component. The token form keeps the time's zone
// offset; equality and ordering compare instants. Precision is milliseconds,
// the finest the wire form carries, so anything below is dropped here rather
// than silently lost on the first round trip.
func Date(t time.Time) Component {
	return Component{kind: KindDate, t: t.Truncate(time.Millisecond)}
}

// Bytes makes a raw byte array component. Bytes sorts shorter-first, then
// byte-wise. The slice is copied.
func Bytes(b []byte) Component {
	return Component{kind: KindBytes, raw: bytes.Clone(b)}
}

// ByteString makes a byte string component, which sorts purely byte-wise
// like a string. The slice is copied.
func ByteString(b []byte) Component {
	return Component{kind: KindByteString, raw: bytes.Clone(b)}
}

// Chars makes a char array component.
func Chars(s string) Component {
	return Component{kind: KindChars, s: s}
}

// Index makes a list position marker. It appears in Items and URL paths
// where the JSON has a list; the index must not be negative.
func Index(i int64) (Component, error) {
	if i < 0 {
		return Component{}, fmt.Errorf("%w: index must not be negative: %d", ErrType, i)
	}
	return Component{kind: KindIndex, i: i}, nil
}

// Kind returns the component's type.
func (c Component) Kind() Kind { return c.kind }

// IsZero reports whether c is the invalid zero Component.
func (c Component) IsZero() bool { return c.kind == 0 }

// Name returns the class or attribute name, or "" for other kinds.
func (c Component) Name() string {
	if c.kind == KindClass || c.kind == KindAttribute {
		return c.s
	}
	return ""
}

// Text returns the string or chars content, or "" for other kinds.
func (c Component) Text() string {
	if c.kind == KindString || c.kind == KindChars {
		return c.s
	}
	return ""
}

// Bool returns the boolean content, or false for other kinds.
func (c Component) Bool() bool { return c.b }

// Float64 returns the float or double content, or 0 for other kinds.
func (c Component) Float64() float64 { return c.f }

// Int64 returns the long or index content, or 0 for other kinds.
func (c Component) Int64() int64 { return c.i }

// Time returns the date content, or the zero time for other kinds.
func (c Component) Time() time.Time { return c.t }

// Data returns a copy of the bytes or bytestring content, or nil.
func (c Component) Data() []byte { return bytes.Clone(c.raw) }

// Token returns the canonical token spelling: the form used inside Items,
// URL path segments and extended JSON keys. Strings are JSON-quoted so
// tokens never contain unescaped whitespace outside Chars(...).
func (c Component) Token() string {
	switch c.kind {
	case KindClass, KindAttribute:
		return c.s
	case KindString:
		return jsonQuote(c.s)
	case KindBool:
		if c.b {
			return "true"
		}
		return "false"
	case KindFloat:
		return forceDecimalPoint(strconv.FormatFloat(c.f, 'f', -1, 32)) + "f"
	case KindDouble:
		return forceDecimalPoint(strconv.FormatFloat(c.f, 'f', -1, 64))
	case KindLong:
		return strconv.FormatInt(c.i, 10)
	case KindDate:
		return c.t.Format(isoDateLayout)
	case KindBytes:
		return "Bytes(" + bytesToHex(c.raw) + ")"
	case KindByteString:
		return "ByteString(" + bytesToHex(c.raw) + ")"
	case KindChars:
		return "Chars(" + jsonQuote(c.s) + ")"
	case KindIndex:
		return "[" + strconv.FormatInt(c.i, 10) + "]"
	}
	return ""
}

// String returns the token form.
func (c Component) String() string { return c.Token() }

// Equal reports whether two components have the same kind and value. Dates
// compare as instants, so the zone offset does not matter.
func (c Component) Equal(other Component) bool {
	return c.Compare(other) == 0 && c.kind == other.kind
}

// Compare orders components the way the server does: by kind rank first,
// then by value within a kind. Numbers compare numerically, dates
// chronologically, names and strings lexically, byte strings byte-wise and
// raw byte arrays shorter-first then byte-wise.
func (c Component) Compare(other Component) int {
	if c.kind != other.kind {
		return cmp.Compare(c.kind, other.kind)
	}
	switch c.kind {
	case KindClass, KindAttribute, KindString, KindChars:
		return strings.Compare(c.s, other.s)
	case KindBool:
		if c.b == other.b {
			return 0
		}
		if other.b {
			return -1
		}
		return 1
	case KindFloat, KindDouble:
		return cmp.Compare(c.f, other.f)
	case KindLong, KindIndex:
		return cmp.Compare(c.i, other.i)
	case KindDate:
		return c.t.Compare(other.t)
	case KindBytes:
		if len(c.raw) != len(other.raw) {
			return cmp.Compare(len(c.raw), len(other.raw))
		}
		return bytes.Compare(c.raw, other.raw)
	case KindByteString:
		return bytes.Compare(c.raw, other.raw)
	}
	return 0
}

// isoDateLayout renders dates the way the server does: millisecond
// precision, Z for UTC, ±HH:MM otherwise.
const isoDateLayout = "2006-01-02T15:04:05.000Z07:00"

// isoDateRegexp classifies date tokens during unquoting. Parsing itself
// goes through time.Parse, which also accepts fractions other than three
// digits.
var isoDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)

// parseDate parses an ISO-8601 token into a Date component.
func parseDate(s string) (Component, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Component{}, fmt.Errorf("%w: bad date token %q: %v", ErrType, s, err)
	}
	return Date(t), nil
}

// bytesToHex renders a byte array as uppercase hex pairs joined with '_',
// or "" for an empty array.
func bytesToHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	const hexUpper = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte('_')
		}
		sb.WriteByte(hexUpper[c>>4])
		sb.WriteByte(hexUpper[c&0xf])
	}
	return sb.String()
}

// hexToBytes parses the hex form produced by bytesToHex. Lowercase hex,
// missing separators and odd digit counts are all rejected: the wire form
// is exact, not merely hex-like.
func hexToBytes(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if len(s)%3 != 2 {
		return nil, fmt.Errorf("%w: byte array hex must be HH_HH_... pairs: %q", ErrType, s)
	}
	out := make([]byte, 0, (len(s)+1)/3)
	for i := 0; i < len(s); i += 3 {
		hi, err1 := hexDigit(s[i])
		lo, err2 := hexDigit(s[i+1])
		if err1 != nil {
			return nil, err1
		}
		if err2 != nil {
			return nil, err2
		}
		if i+2 < len(s) && s[i+2] != '_' {
			return nil, fmt.Errorf("%w: byte array hex pairs must be separated by '_': %q", ErrType, s)
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("%w: byte array hex must be uppercase: %q", ErrType, string(c))
}

// parseBytesToken parses Bytes(...) or ByteString(...) given the prefix
// already seen by the caller.
func parseBytesToken(s, prefix string, kind Kind) (Component, error) {
	if !strings.HasPrefix(s, prefix+"(") || !strings.HasSuffix(s, ")") {
		return Component{}, fmt.Errorf("%w: cannot parse %s component: %q", ErrType, prefix, s)
	}
	b, err := hexToBytes(s[len(prefix)+1 : len(s)-1])
	if err != nil {
		return Component{}, err
	}
	return Component{kind: kind, raw: b}, nil
}

// parseCharsToken parses Chars("...").
func parseCharsToken(s string) (Component, error) {
	if !strings.HasPrefix(s, "Chars(") || !strings.HasSuffix(s, ")") {
		return Component{}, fmt.Errorf("%w: cannot parse Chars component: %q", ErrType, s)
	}
	inner := s[len("Chars(") : len(s)-1]
	after, err := skipJSONString(inner, 0)
	if err != nil || after != len(inner) {
		return Component{}, fmt.Errorf("%w: Chars() does not contain a valid quoted string: %q", ErrType, s)
	}
	text, err := jsonUnquote(inner)
	if err != nil {
		return Component{}, err
	}
	return Chars(text), nil
}

// parseIndexToken parses [n].
func parseIndexToken(s string) (Component, error) {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return Component{}, fmt.Errorf("%w: cannot parse index component: %q", ErrType, s)
	}
	i, err := strconv.ParseInt(s[1:len(s)-1], 10, 64)
	if err != nil {
		return Component{}, fmt.Errorf("%w: index component must contain an integer: %q", ErrType, s)
	}
	return Index(i)
}

// forceDecimalPoint makes a formatted float carry a decimal point even when
// integer-valued, since the point is what distinguishes 5.0 from Long 5 on
// the wire. FormatFloat with 'f' never emits an exponent, so appending ".0"
// is always well-formed.
func forceDecimalPoint(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
