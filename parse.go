// Parsing the JSON dialect into trees.
//
// A recursive-descent parser over the pre-tokenized list, one token of
// lookahead, with the cursor held in the parser value rather than shared
// state so parses are independent and reentrant.
//
//	value  := object | list | scalar
//	object := '{' (pair (',' pair)*)? '}'
//	pair   := KEY ':' value
//	list   := '[' (value (',' value)*)? ']'
package infinity

import "fmt"

// Parse reads a standard (underscore-quoted) document into a tree. The
// whole input must form exactly one document.
func Parse(text string) (Element, error) {
	return parseText(text, false)
}

// ParseExtended reads a document in the extended format, where keys may be
// bare typed tokens instead of underscore-quoted strings.
func ParseExtended(text string) (Element, error) {
	return parseText(text, true)
}

func parseText(text string, extended bool) (Element, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, extended: extended}
	e, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("%w: trailing content at token %d: %q", ErrSyntax, p.pos, p.tokens[p.pos])
	}
	return e, nil
}

type parser struct {
	tokens   []string
	pos      int
	extended bool
}

func (p *parser) parse() (Element, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("%w: document ended without a complete parse at token %d", ErrSyntax, p.pos)
	}
	switch {
	case p.match("{"):
		return p.object()
	case p.match("["):
		return p.list()
	}
	t := p.tokens[p.pos]
	p.pos++
	v, err := Unquote(t, p.extended)
	if err != nil {
		return nil, fmt.Errorf("unparseable token %d: %w", p.pos-1, err)
	}
	return v, nil
}

func (p *parser) object() (Element, error) {
	obj := NewObject()
	if p.match("}") {
		return obj, nil
	}
	for {
		if p.pos >= len(p.tokens) {
			return nil, fmt.Errorf("%w: missing '}' at token %d", ErrSyntax, p.pos)
		}
		keyToken := p.tokens[p.pos]
		key, err := Unquote(keyToken, p.extended)
		if err != nil {
			return nil, fmt.Errorf("unparseable key at token %d: %w", p.pos, err)
		}
		if key.IsNull() {
			return nil, fmt.Errorf("%w: null key at token %d", ErrSyntax, p.pos)
		}
		p.pos++
		if !p.match(":") {
			return nil, fmt.Errorf("%w: expected ':' at token %d", ErrSyntax, p.pos)
		}
		child, err := p.parse()
		if err != nil {
			return nil, err
		}
		if _, err := obj.Put(key.C, child); err != nil {
			return nil, err
		}
		if p.match(",") {
			continue
		}
		if p.match("}") {
			return obj, nil
		}
		return nil, fmt.Errorf("%w: missing '}' at token %d", ErrSyntax, p.pos)
	}
}

func (p *parser) list() (Element, error) {
	list := NewList()
	if p.match("]") {
		return list, nil
	}
	for {
		child, err := p.parse()
		if err != nil {
			return nil, err
		}
		list.Add(child)
		if p.match(",") {
			continue
		}
		if p.match("]") {
			return list, nil
		}
		return nil, fmt.Errorf("%w: missing ']' at token %d", ErrSyntax, p.pos)
	}
}

// match consumes the next token if it equals s.
func (p *parser) match(s string) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos] == s {
		p.pos++
		return true
	}
	return false
}
