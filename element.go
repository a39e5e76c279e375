// Tree model for parsed documents.
//
// A parsed document is a tree of Elements with three variants: Object (keys
// are typed components), List (ordered children addressed by index), and
// Value (one component, or null). The variants expose only the operations
// that are legal for them: a List takes indexes, not arbitrary keys, and a
// Value has no children at all.
//
// Object iteration is insertion-ordered, which is stable but carries no
// meaning: JSON objects are unordered and the server's own order is the
// component order, not the document order. List iteration yields Index
// components 0..len-1 so generic tree walks can treat both shapes alike.
package infinity

import (
	"fmt"
	"iter"
)

// Element is one node of a parsed document tree: an *Object, a *List, or a
// Value. A nil Element in a child position means an Item terminates there;
// it is written as null and compares equal to an explicit null Value.
type Element interface {
	IsValue() bool
	IsObject() bool
	IsList() bool

	// Entries enumerates children as (key component, child) pairs. A List
	// yields Index keys 0..len-1; a Value yields nothing.
	Entries() iter.Seq2[Component, Element]

	// String returns the standard (underscore-quoted) compact form.
	String() string
}

// Equal reports structural equality of two trees: order-independent for
// Objects, order-dependent for Lists. A nil Element, used for Item termini,
// equals an explicit null Value.
func Equal(a, b Element) bool {
	if isNullElement(a) || isNullElement(b) {
		return isNullElement(a) && isNullElement(b)
	}
	switch x := a.(type) {
	case Value:
		y, ok := b.(Value)
		return ok && x.C.Equal(y.C)
	case *Object:
		y, ok := b.(*Object)
		if !ok || len(x.keys) != len(y.keys) {
			return false
		}
		for k, e := range x.m {
			other, found := y.m[k]
			if !found || !Equal(e.child, other.child) {
				return false
			}
		}
		return true
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func isNullElement(e Element) bool {
	if e == nil {
		return true
	}
	v, ok := e.(Value)
	return ok && v.IsNull()
}

// Value wraps a single component, or null when C is the zero Component.
type Value struct {
	C Component
}

// Null is the null Value.
var Null = Value{}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.C.IsZero() }

func (v Value) IsValue() bool  { return true }
func (v Value) IsObject() bool { return false }
func (v Value) IsList() bool   { return false }

// Entries of a Value is the empty sequence: values have no children.
func (v Value) Entries() iter.Seq2[Component, Element] {
	return func(yield func(Component, Element) bool) {}
}

func (v Value) String() string {
	text, quoted, err := QuoteValue(v, false)
	if err != nil {
		return "null"
	}
	if quoted {
		return jsonQuote(text)
	}
	return text
}

type objEntry struct {
	key   Component
	child Element
}

// Object is an unordered mapping from component keys to child elements.
// Keys are unique; putting an existing key replaces its child (last write
// wins) without disturbing the enumeration order.
type Object struct {
	keys []string // standard-form key text, in insertion order
	m    map[string]objEntry
}

// NewObject makes an empty Object.
func NewObject() *Object {
	return &Object{m: make(map[string]objEntry)}
}

func (o *Object) IsValue() bool  { return false }
func (o *Object) IsObject() bool { return true }
func (o *Object) IsList() bool   { return false }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Put maps key to child, replacing any previous child. It returns o for
// chaining. A null key is rejected.
func (o *Object) Put(key Component, child Element) (*Object, error) {
	k, err := QuoteKey(key, false)
	if err != nil {
		return o, err
	}
	if _, exists := o.m[k]; !exists {
		o.keys = append(o.keys, k)
	}
	o.m[k] = objEntry{key: key, child: child}
	return o, nil
}

// PutClass is Put with a class-name key.
func (o *Object) PutClass(name string, child Element) (*Object, error) {
	c, err := Class(name)
	if err != nil {
		return o, err
	}
	return o.Put(c, child)
}

// PutAttribute is Put with an attribute-name key.
func (o *Object) PutAttribute(name string, child Element) (*Object, error) {
	a, err := Attribute(name)
	if err != nil {
		return o, err
	}
	return o.Put(a, child)
}

// Get returns the child under key. found distinguishes a missing key from
// a present key whose child is nil (an Item terminus).
func (o *Object) Get(key Component) (child Element, found bool) {
	k, err := QuoteKey(key, false)
	if err != nil {
		return nil, false
	}
	e, found := o.m[k]
	return e.child, found
}

// Delete removes key and its child, if present.
func (o *Object) Delete(key Component) {
	k, err := QuoteKey(key, false)
	if err != nil {
		return
	}
	if _, found := o.m[k]; !found {
		return
	}
	delete(o.m, k)
	for i, existing := range o.keys {
		if existing == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Entries enumerates entries in insertion order.
func (o *Object) Entries() iter.Seq2[Component, Element] {
	return func(yield func(Component, Element) bool) {
		for _, k := range o.keys {
			e := o.m[k]
			if !yield(e.key, e.child) {
				return
			}
		}
	}
}

func (o *Object) String() string { return mustWrite(o, Format{}) }

// List is an ordered sequence of child elements.
type List struct {
	items []Element
}

// NewList makes an empty List.
func NewList() *List {
	return &List{}
}

func (l *List) IsValue() bool  { return false }
func (l *List) IsObject() bool { return false }
func (l *List) IsList() bool   { return true }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Add appends child and returns l for chaining.
func (l *List) Add(child Element) *List {
	l.items = append(l.items, child)
	return l
}

// At returns the element at position i, or nil if out of range.
func (l *List) At(i int) Element {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Put sets position i, which may be within the list or exactly at the end
// to append; anything beyond that is a structural error.
func (l *List) Put(i int64, child Element) error {
	switch {
	case i < 0 || i > int64(len(l.items)):
		return fmt.Errorf("%w: list index %d out of range 0..%d", ErrStructure, i, len(l.items))
	case i == int64(len(l.items)):
		l.items = append(l.items, child)
	default:
		l.items[i] = child
	}
	return nil
}

// Entries enumerates elements with Index keys 0..len-1.
func (l *List) Entries() iter.Seq2[Component, Element] {
	return func(yield func(Component, Element) bool) {
		for i, e := range l.items {
			ix, _ := Index(int64(i))
			if !yield(ix, e) {
				return
			}
		}
	}
}

func (l *List) String() string { return mustWrite(l, Format{}) }
