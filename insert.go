// Merging Items into trees and flattening trees back to Items.
//
// An Item is one root-to-leaf path. Insert walks the components of an Item
// down a tree, creating Objects (or Lists where the next component is an
// Index) as it goes; FlattenToList emits one component path per leaf; and
// UnflattenFromList rebuilds a tree from such paths. Flatten and unflatten
// are mutual inverses for any tree built purely by Insert.
package infinity

import "fmt"

// Insert merges one Item into the tree rooted at root, which must be an
// Object or a List. With compactTips, an Item whose last two components
// would otherwise become one more nesting level is stored as a key with a
// Value child, the common shape for single-valued attributes; without it the
// Item's last component maps to a nil terminus.
func Insert(root Element, compactTips bool, item ...Component) error {
	outer := root
	for i, c := range item {
		child, found, err := childGet(outer, c)
		if err != nil {
			return err
		}
		if found && !isNullElement(child) {
			outer = child
			continue
		}
		if compactTips && i == len(item)-2 {
			return childPut(outer, c, Value{item[len(item)-1]})
		}
		if i == len(item)-1 {
			return childPut(outer, c, nil)
		}
		var inner Element
		if item[i+1].Kind() == KindIndex {
			inner = NewList()
		} else {
			inner = NewObject()
		}
		if err := childPut(outer, c, inner); err != nil {
			return err
		}
		outer = inner
	}
	return nil
}

// childGet reads the child under component c, uniformly over the variants.
// Lists accept Index or Long components as positions.
func childGet(e Element, c Component) (Element, bool, error) {
	switch n := e.(type) {
	case *Object:
		child, found := n.Get(c)
		return child, found, nil
	case *List:
		i, err := listPosition(c)
		if err != nil {
			return nil, false, err
		}
		if i >= int64(n.Len()) {
			return nil, false, nil
		}
		return n.At(int(i)), true, nil
	}
	return nil, false, fmt.Errorf("%w: cannot descend into a value", ErrStructure)
}

// childPut writes the child under component c, uniformly over the variants.
func childPut(e Element, c Component, child Element) error {
	switch n := e.(type) {
	case *Object:
		_, err := n.Put(c, child)
		return err
	case *List:
		i, err := listPosition(c)
		if err != nil {
			return err
		}
		return n.Put(i, child)
	}
	return fmt.Errorf("%w: cannot put a key into a value", ErrStructure)
}

// listPosition extracts a list position from an Index or Long component.
func listPosition(c Component) (int64, error) {
	switch c.Kind() {
	case KindIndex, KindLong:
		return c.Int64(), nil
	}
	return 0, fmt.Errorf("%w: bad position type for a list: %v", ErrStructure, c)
}

// FlattenToList walks a tree and returns one ordered component path per
// leaf, in iteration order. A tree with N leaves yields N paths; an edge
// leading to an empty Object or List has no leaf under it and disappears.
func FlattenToList(e Element) [][]Component {
	if isNullElement(e) {
		return nil
	}
	if v, ok := e.(Value); ok {
		return [][]Component{{v.C}}
	}
	var paths [][]Component
	for key, child := range e.Entries() {
		switch {
		case isNullElement(child):
			paths = append(paths, []Component{key})
		default:
			for _, suffix := range FlattenToList(child) {
				path := append([]Component{key}, suffix...)
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// UnflattenFromList rebuilds a tree from component paths, the inverse of
// FlattenToList. The root becomes a List when the first component of the
// first path is an Index, otherwise an Object.
func UnflattenFromList(compactTips bool, paths [][]Component) (Element, error) {
	var root Element
	if len(paths) > 0 && len(paths[0]) > 0 && paths[0][0].Kind() == KindIndex {
		root = NewList()
	} else {
		root = NewObject()
	}
	for _, path := range paths {
		if err := Insert(root, compactTips, path...); err != nil {
			return nil, err
		}
	}
	return root, nil
}
