// Items: the tuples the server stores.
//
// An Item is an ordered, non-empty sequence of components, the atomic unit
// of storage and retrieval. Items order lexicographically using the
// component order, so client-side sorting agrees with the server's. The
// token string form joins component tokens with single spaces; strings and
// Chars(...) are the only tokens that can contain embedded whitespace, and
// both are JSON-quoted so the form parses back unambiguously.
package infinity

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Item is an ordered tuple of components.
type Item []Component

// NewItem builds an Item, rejecting empty tuples and zero components.
func NewItem(components ...Component) (Item, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: an item cannot be empty", ErrType)
	}
	for i, c := range components {
		if c.IsZero() {
			return nil, fmt.Errorf("%w: item component %d is null", ErrType, i)
		}
	}
	return Item(components), nil
}

// Compare orders items lexicographically by component; a strict prefix
// sorts before its extensions.
func (it Item) Compare(other Item) int {
	for i := range it {
		if i >= len(other) {
			return 1
		}
		if c := it[i].Compare(other[i]); c != 0 {
			return c
		}
	}
	if len(it) < len(other) {
		return -1
	}
	return 0
}

// Equal reports whether two items have the same component sequence.
func (it Item) Equal(other Item) bool {
	return it.Compare(other) == 0 && len(it) == len(other)
}

// String returns the space-joined token form.
func (it Item) String() string {
	tokens := make([]string, len(it))
	for i, c := range it {
		tokens[i] = c.Token()
	}
	return strings.Join(tokens, " ")
}

// Fingerprint returns a 64-bit hash of the item's token form, for cheap
// identity checks and dedup outside an ItemSpace.
func (it Item) Fingerprint() uint64 {
	return xxh3.HashString(it.String())
}

// ID returns the fingerprint as 16 hex characters.
func (it Item) ID() string {
	return fmt.Sprintf("%016x", it.Fingerprint())
}

// ParseItem parses a token string back into an Item: the inverse of
// String. Components are separated by spaces, CR or LF; tabs are not
// valid anywhere in the form.
func ParseItem(s string) (Item, error) {
	var item Item
	i := 0
	for i < len(s) {
		after, err := skipComponentToken(s, i)
		if err != nil {
			return nil, err
		}
		v, err := parsePrimitive(s[i:after])
		if err != nil {
			return nil, err
		}
		if v.IsNull() {
			return nil, fmt.Errorf("%w: null cannot appear in an item: %q", ErrType, s)
		}
		item = append(item, v.C)
		i = after
		for i < len(s) && (s[i] == ' ' || s[i] == '\r' || s[i] == '\n') {
			i++
		}
	}
	if len(item) == 0 {
		return nil, fmt.Errorf("%w: no components in item string %q", ErrType, s)
	}
	return item, nil
}

// skipComponentToken finds the end of the component token at s[start].
// Quoted strings and Chars(...) carry embedded whitespace; every other
// token runs to the next whitespace or control character.
func skipComponentToken(s string, start int) (int, error) {
	if s[start] == '"' {
		return skipJSONString(s, start)
	}
	if strings.HasPrefix(s[start:], "Chars(") {
		after, err := skipJSONString(s, start+len("Chars("))
		if err != nil {
			return 0, fmt.Errorf("%w: Chars() missing string in %q", ErrLexical, s)
		}
		if after >= len(s) || s[after] != ')' {
			return 0, fmt.Errorf("%w: Chars() missing ')' in %q", ErrLexical, s)
		}
		return after + 1, nil
	}
	i := start
	for i < len(s) && s[i] > ' ' {
		i++
	}
	return i, nil
}
