// URL path encoding for database prefixes.
//
// A request addresses a position in the database by a path of component
// tokens: one percent-encoded token per path segment. Parentheses, square
// brackets and colons are left unencoded; they are safe in a path segment
// and keep Bytes(...), [n] and date tokens readable in logs and browsers.
package infinity

import "strings"

// QuotedURL joins host and one path segment per component. The host may
// carry its own path and an optional trailing slash; strings are
// JSON-quoted like any other token, so the segment for "Basics" is
// %22Basics%22.
func QuotedURL(host string, prefix ...Component) string {
	host = strings.TrimSuffix(host, "/")
	var sb strings.Builder
	sb.WriteString(host)
	for _, c := range prefix {
		sb.WriteByte('/')
		sb.WriteString(escapeSegment(c.Token()))
	}
	return sb.String()
}

// escapeSegment percent-encodes one token as a path segment.
func escapeSegment(s string) string {
	const hexUpper = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			strings.IndexByte("_.-~()[]:", c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hexUpper[c>>4])
		sb.WriteByte(hexUpper[c&0xf])
	}
	return sb.String()
}
