// Tokenizing of the JSON dialect.
//
// The tokenizer splits raw text into string tokens: structural characters,
// quoted strings, bare tokens, and ISO-8601 dates. Dates are matched first
// because extended-format keys may be unquoted dates whose internal ':'
// would otherwise split into separate tokens. Whitespace is any character
// at or below U+0020.
package infinity

import "fmt"

type tokenizer struct {
	s   string
	pos int
}

// tokenize splits s into an ordered token list. The only failures are
// lexical: an unterminated quoted string or a malformed escape.
func tokenize(s string) ([]string, error) {
	tk := &tokenizer{s: s}
	var tokens []string
	for {
		tk.whitespace()
		if tk.pos >= len(tk.s) {
			return tokens, nil
		}
		before := tk.pos
		if err := tk.token(); err != nil {
			return nil, err
		}
		tokens = append(tokens, tk.s[before:tk.pos])
	}
}

// token consumes one token, trying the alternatives in priority order.
func (tk *tokenizer) token() error {
	if tk.isoDate() {
		return nil
	}
	if tk.pos < len(tk.s) && tk.s[tk.pos] == '"' {
		after, err := skipJSONString(tk.s, tk.pos)
		if err != nil {
			return err
		}
		tk.pos = after
		return nil
	}
	if tk.structural() {
		return nil
	}
	if tk.bare() {
		return nil
	}
	return fmt.Errorf("%w: no token at offset %d", ErrLexical, tk.pos)
}

// whitespace skips a run of whitespace.
func (tk *tokenizer) whitespace() {
	for tk.pos < len(tk.s) && tk.s[tk.pos] <= ' ' {
		tk.pos++
	}
}

// structural consumes one of { } [ ] , :.
func (tk *tokenizer) structural() bool {
	if tk.pos >= len(tk.s) {
		return false
	}
	switch tk.s[tk.pos] {
	case '{', '}', '[', ']', ',', ':':
		tk.pos++
		return true
	}
	return false
}

// bare consumes the longest run of characters that are neither whitespace
// nor structural. This covers numbers, booleans, null and underscore-quoted
// type tokens.
func (tk *tokenizer) bare() bool {
	start := tk.pos
	for tk.pos < len(tk.s) {
		c := tk.s[tk.pos]
		if c <= ' ' || c == '{' || c == '}' || c == '[' || c == ']' || c == ',' || c == ':' {
			break
		}
		tk.pos++
	}
	return tk.pos > start
}

// isoDate consumes YYYY-MM-DDTHH:MM:SS[.fff](Z|±HH:MM), backtracking fully
// on a partial match.
func (tk *tokenizer) isoDate() bool {
	before := tk.pos
	if tk.digits(4) && tk.match('-') &&
		tk.digits(2) && tk.match('-') &&
		tk.digits(2) && tk.match('T') &&
		tk.digits(2) && tk.match(':') &&
		tk.digits(2) && tk.match(':') &&
		tk.digits(2) && tk.millis() && tk.timezone() {
		return true
	}
	tk.pos = before
	return false
}

// millis consumes an optional .fff fraction.
func (tk *tokenizer) millis() bool {
	if tk.match('.') {
		return tk.digits(3)
	}
	return true
}

// timezone consumes Z or ±HH:MM.
func (tk *tokenizer) timezone() bool {
	if tk.match('+') || tk.match('-') {
		return tk.digits(2) && tk.match(':') && tk.digits(2)
	}
	return tk.match('Z')
}

// match consumes c if it is next.
func (tk *tokenizer) match(c byte) bool {
	if tk.pos < len(tk.s) && tk.s[tk.pos] == c {
		tk.pos++
		return true
	}
	return false
}

// digits consumes exactly n digits, or nothing.
func (tk *tokenizer) digits(n int) bool {
	before := tk.pos
	for i := 0; i < n; i++ {
		if tk.pos >= len(tk.s) || tk.s[tk.pos] < '0' || tk.s[tk.pos] > '9' {
			tk.pos = before
			return false
		}
		tk.pos++
	}
	return true
}
