// Underscore quoting and unquoting.
//
// JSON keys are always strings, so the twelve component types are packed
// into them with an escape convention: a leading '_' marks a typed token
// (_5 is Long 5, _5.0 is Double, _5.0f is Float, _MyClass a class name and
// so on), and a real string that itself starts with '_' gets one more '_'
// stuffed at the front, removed again on the way in. Values follow the same
// rule except that null, booleans and doubles ride through as native JSON.
//
// The extended format drops the leading underscore and instead classifies
// keys by shape (leading digit, name pattern, Name(...), leading '[').
// Extended output reads better but is not valid server input.
package infinity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// QuoteKey renders a component as a JSON object key. In standard mode the
// result is the logical key text before JSON string escaping (the writer
// wraps it in quotes); in extended mode it is the literal text to emit,
// with strings already JSON-quoted. A key can never be null, which is why
// QuoteKey takes a Component rather than a Value.
func QuoteKey(c Component, extended bool) (string, error) {
	if c.IsZero() {
		return "", fmt.Errorf("%w: a JSON key cannot be null", ErrType)
	}
	if (c.kind == KindFloat || c.kind == KindDouble) && !isFinite(c.f) {
		return "", fmt.Errorf("%w: non-finite numbers have no JSON form: %v", ErrType, c.f)
	}
	if extended {
		return c.Token(), nil
	}
	if c.kind == KindString {
		// Stuff an extra '_' so a real underscore-prefixed string stays
		// distinguishable from a typed token.
		if strings.HasPrefix(c.s, "_") {
			return "_" + c.s, nil
		}
		return c.s, nil
	}
	return "_" + c.Token(), nil
}

// QuoteValue renders a value position. Null, booleans and doubles are
// native JSON and pass through bare; everything else uses the key rule.
// The returned quoted flag tells the writer whether the text still needs
// JSON string quoting (standard-mode strings and tokens do; bare literals
// and extended tokens do not).
func QuoteValue(v Value, extended bool) (text string, quoted bool, err error) {
	c := v.C
	switch c.kind {
	case 0:
		return "null", false, nil
	case KindBool:
		return c.Token(), false, nil
	case KindDouble:
		if !isFinite(c.f) {
			return "", false, fmt.Errorf("%w: non-finite numbers have no JSON form: %v", ErrType, c.f)
		}
		return c.Token(), false, nil
	}
	text, err = QuoteKey(c, extended)
	if err != nil {
		return "", false, err
	}
	return text, !extended, nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// unquoteString decodes a complete quoted-string token. Tokens from the
// tokenizer are already well-formed, but Unquote is also called directly,
// so an unterminated string or trailing text is rejected here too.
func unquoteString(token string) (string, error) {
	after, err := skipJSONString(token, 0)
	if err != nil {
		return "", err
	}
	if after != len(token) {
		return "", fmt.Errorf("%w: trailing content after string token: %q", ErrLexical, token)
	}
	return jsonUnquote(token)
}

// Unquote decodes a single token from the tokenizer into a Value, deciding
// the component type from the text alone. It is the inverse of QuoteKey
// and QuoteValue for every representable component.
func Unquote(token string, extended bool) (Value, error) {
	if token == "" {
		return Value{String("")}, nil
	}
	// Bare literals are decided before any underscore handling, so the
	// quoted string "null" stays a string.
	switch token {
	case "null":
		return Value{}, nil
	case "true":
		return Value{Bool(true)}, nil
	case "false":
		return Value{Bool(false)}, nil
	}
	if extended {
		if token[0] == '"' {
			s, err := unquoteString(token)
			if err != nil {
				return Value{}, err
			}
			return Value{String(s)}, nil
		}
		c, err := parsePrimitive(token)
		if err != nil {
			return Value{}, err
		}
		return c, nil
	}
	s := token
	if token[0] == '"' {
		var err error
		if s, err = unquoteString(token); err != nil {
			return Value{}, err
		}
	} else if f, err := strconv.ParseFloat(token, 64); err == nil {
		// A bare number with no type tag is always a Double: Long and
		// Float exist on the wire only as underscore-quoted tokens. A
		// bare token cannot start with '_' in real JSON, so anything
		// else falls through to the string rules below.
		return Value{Double(f)}, nil
	}
	if s == "" {
		return Value{String("")}, nil
	}
	if s[0] != '_' {
		return Value{String(s)}, nil
	}
	if strings.HasPrefix(s, "__") {
		// Unstuff: it was a string starting with '_'.
		return Value{String(s[1:])}, nil
	}
	s = s[1:]
	if s == "" {
		return Value{}, fmt.Errorf("%w: cannot underscore-unquote a lone underscore", ErrType)
	}
	return parsePrimitive(s)
}

// parsePrimitive classifies a bare token into a Value by lexical shape:
// literal, date, long, float, double, class name, attribute name, or one
// of the Name(...) and [n] forms. A quoted string is also accepted, for
// the benefit of Item token strings.
func parsePrimitive(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty component token", ErrType)
	}
	switch s {
	case "null":
		return Value{}, nil
	case "true":
		return Value{Bool(true)}, nil
	case "false":
		return Value{Bool(false)}, nil
	}
	c := s[0]
	switch {
	case c == '"':
		text, err := unquoteString(s)
		if err != nil {
			return Value{}, err
		}
		return Value{String(text)}, nil
	case c >= '0' && c <= '9' || c == '+' || c == '-':
		return parseNumberOrDate(s)
	case c == '[':
		ix, err := parseIndexToken(s)
		if err != nil {
			return Value{}, err
		}
		return Value{ix}, nil
	case strings.HasPrefix(s, "Bytes("):
		b, err := parseBytesToken(s, "Bytes", KindBytes)
		if err != nil {
			return Value{}, err
		}
		return Value{b}, nil
	case strings.HasPrefix(s, "ByteString("):
		b, err := parseBytesToken(s, "ByteString", KindByteString)
		if err != nil {
			return Value{}, err
		}
		return Value{b}, nil
	case strings.HasPrefix(s, "Chars("):
		ch, err := parseCharsToken(s)
		if err != nil {
			return Value{}, err
		}
		return Value{ch}, nil
	case isClassName(s):
		cl, err := Class(s)
		if err != nil {
			return Value{}, err
		}
		return Value{cl}, nil
	case isAttributeName(s):
		at, err := Attribute(s)
		if err != nil {
			return Value{}, err
		}
		return Value{at}, nil
	}
	return Value{}, fmt.Errorf("%w: cannot underscore-unquote token: %q", ErrType, s)
}

// parseNumberOrDate resolves the numeric-looking tokens: a date if the ISO
// shape matches, otherwise Long without a decimal point, Float with a
// decimal point and a trailing 'f', Double with a decimal point.
func parseNumberOrDate(s string) (Value, error) {
	if isoDateRegexp.MatchString(s) {
		d, err := parseDate(s)
		if err != nil {
			return Value{}, err
		}
		return Value{d}, nil
	}
	if !strings.Contains(s, ".") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad long token %q", ErrType, s)
		}
		return Value{Long(i)}, nil
	}
	if strings.HasSuffix(s, "f") {
		f, err := strconv.ParseFloat(s[:len(s)-1], 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad float token %q", ErrType, s)
		}
		return Value{Float(float32(f))}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: bad double token %q", ErrType, s)
	}
	return Value{Double(f)}, nil
}
