// JSON string escaping.
//
// Tokens, keys and Chars(...) contents all use the same quoted-string form:
// standard JSON escapes, with every character outside printable ASCII
// written as \uXXXX (UTF-16 code units, so characters beyond the BMP become
// surrogate pairs). That keeps the wire form 7-bit clean and byte-for-byte
// reproducible, which the idempotent-formatting guarantee depends on.
package infinity

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// jsonQuote escapes s and wraps it in double quotes.
func jsonQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < ' ' || r > '~' {
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					fmt.Fprintf(&sb, `\u%04x\u%04x`, hi, lo)
				} else {
					fmt.Fprintf(&sb, `\u%04x`, r)
				}
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// jsonUnquote reverses jsonQuote. Surrounding double quotes are optional so
// it also serves for already-stripped key text.
func jsonUnquote(s string) (string, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("%w: string ends after backslash: %q", ErrLexical, s)
		}
		switch s[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, width, err := unescapeUnicode(s, i)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += width
		default:
			return "", fmt.Errorf("%w: invalid escape sequence \\%c", ErrLexical, s[i])
		}
	}
	return sb.String(), nil
}

// unescapeUnicode decodes \uXXXX at s[i] ('u' position), joining surrogate
// pairs into one rune. It returns the rune and how many bytes past the 'u'
// were consumed.
func unescapeUnicode(s string, i int) (rune, int, error) {
	u, err := hex4(s, i+1)
	if err != nil {
		return 0, 0, err
	}
	r := rune(u)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}
	// Expect the low half immediately after.
	if i+6 < len(s) && s[i+5] == '\\' && s[i+6] == 'u' {
		lo, err := hex4(s, i+7)
		if err != nil {
			return 0, 0, err
		}
		if combined := utf16.DecodeRune(r, rune(lo)); combined != utf8.RuneError {
			return combined, 10, nil
		}
	}
	return utf8.RuneError, 4, nil
}

func hex4(s string, start int) (int, error) {
	if start+4 > len(s) {
		return 0, fmt.Errorf("%w: truncated \\u escape in %q", ErrLexical, s)
	}
	v := 0
	for _, c := range []byte(s[start : start+4]) {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		default:
			return 0, fmt.Errorf("%w: bad \\u escape digit %q", ErrLexical, string(c))
		}
	}
	return v, nil
}

// skipJSONString finds the end of a quoted string starting at s[start],
// which must be '"'. It returns the offset just past the closing quote. The
// escape grammar is validated here so an unterminated or malformed string
// is caught during tokenizing, before any unquoting happens.
func skipJSONString(s string, start int) (int, error) {
	if start >= len(s) || s[start] != '"' {
		return 0, fmt.Errorf("%w: expected '\"' at offset %d", ErrLexical, start)
	}
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '"':
			return i + 1, nil
		case '\\':
			i++
			if i >= len(s) {
				return 0, fmt.Errorf("%w: string ends after backslash at offset %d", ErrLexical, i-1)
			}
			switch s[i] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i++
			case 'u':
				i += 5
			default:
				return 0, fmt.Errorf("%w: invalid escape sequence \\%c at offset %d", ErrLexical, s[i], i)
			}
		default:
			i++
		}
	}
	return 0, fmt.Errorf("%w: unterminated string starting at offset %d", ErrLexical, start)
}
