// ItemSpace: a sorted trie of Items.
//
// The trie is keyed by one component per level, with each node's children
// held in a slice sorted by component order and searched by binary search,
// so traversal enumerates Items exactly as the server would return them.
// Being a stored Item's endpoint (a leaf) and having children are
// independent: a short Item may terminate at a prefix of a longer one.
// Nodes are created lazily on insert and pruned bottom-up on remove.
//
// An ItemSpace is not safe for concurrent mutation; callers who share one
// across goroutines must serialize access themselves, or freeze it after
// building and share it for reads only.
package infinity

import (
	"iter"
	"slices"
)

// Node is one trie position. The root carries no component; every other
// node holds the component that labels its edge from the parent.
type Node struct {
	comp     Component
	children []*Node // sorted by component order
	leaf     bool
	item     Item // the stored Item, when leaf
}

// Component returns the component labeling this node, or the zero
// Component at the root.
func (n *Node) Component() Component { return n.comp }

// IsLeaf reports whether a stored Item terminates exactly here.
func (n *Node) IsLeaf() bool { return n.leaf }

// Item returns the Item terminating here, if any.
func (n *Node) Item() (Item, bool) { return n.item, n.leaf }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Has reports whether a child exists under c.
func (n *Node) Has(c Component) bool {
	_, found := n.search(c)
	return found
}

// Get returns the child under c, or nil. The search is binary over the
// sorted child slice.
func (n *Node) Get(c Component) *Node {
	i, found := n.search(c)
	if !found {
		return nil
	}
	return n.children[i]
}

// Children enumerates children in component order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range n.children {
			if !yield(child) {
				return
			}
		}
	}
}

func (n *Node) search(c Component) (int, bool) {
	return slices.BinarySearchFunc(n.children, c, func(child *Node, c Component) int {
		return child.comp.Compare(c)
	})
}

// ItemSpace is a set of Items held as a sorted trie.
type ItemSpace struct {
	root  Node
	count int
}

// NewItemSpace makes an empty ItemSpace.
func NewItemSpace() *ItemSpace {
	return &ItemSpace{}
}

// Root returns the root node.
func (s *ItemSpace) Root() *Node { return &s.root }

// Count returns the number of stored Items.
func (s *ItemSpace) Count() int { return s.count }

// Insert stores item, creating trie nodes as needed. Inserting an Item
// that is already present is a no-op; the return reports whether the set
// changed.
func (s *ItemSpace) Insert(item Item) bool {
	if len(item) == 0 {
		return false
	}
	n := &s.root
	for _, c := range item {
		i, found := n.search(c)
		if !found {
			child := &Node{comp: c}
			n.children = slices.Insert(n.children, i, child)
			n = child
			continue
		}
		n = n.children[i]
	}
	if n.leaf {
		return false
	}
	n.leaf = true
	n.item = slices.Clone(item)
	s.count++
	return true
}

// Has reports whether item is stored.
func (s *ItemSpace) Has(item Item) bool {
	n := s.find(item)
	return n != nil && n.leaf
}

// Find returns the node at the end of item's path, whether or not an Item
// terminates there, or nil if the path does not exist.
func (s *ItemSpace) Find(item Item) *Node {
	return s.find(item)
}

func (s *ItemSpace) find(item Item) *Node {
	n := &s.root
	for _, c := range item {
		if n = n.Get(c); n == nil {
			return nil
		}
	}
	return n
}

// Remove deletes item if it is stored, then prunes any ancestors the
// deletion left empty and non-leaf, restoring the pre-insert shape. The
// return reports whether the set changed.
func (s *ItemSpace) Remove(item Item) bool {
	if len(item) == 0 {
		return false
	}
	// Record the path for the bottom-up prune.
	path := make([]*Node, 0, len(item)+1)
	n := &s.root
	path = append(path, n)
	for _, c := range item {
		if n = n.Get(c); n == nil {
			return false
		}
		path = append(path, n)
	}
	if !n.leaf {
		return false
	}
	n.leaf = false
	n.item = nil
	s.count--
	for i := len(path) - 1; i > 0; i-- {
		node := path[i]
		if node.leaf || len(node.children) > 0 {
			break
		}
		parent := path[i-1]
		j, found := parent.search(node.comp)
		if found {
			parent.children = slices.Delete(parent.children, j, j+1)
		}
	}
	return true
}

// Items enumerates stored Items in component order. A leaf yields before
// its descendants, matching the prefix-first server order.
func (s *ItemSpace) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		s.root.walk(yield)
	}
}

func (n *Node) walk(yield func(Item) bool) bool {
	if n.leaf {
		if !yield(n.item) {
			return false
		}
	}
	for _, child := range n.children {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Tree converts the trie to the tree model by inserting every stored Item
// into a fresh root. A node that both terminates an Item and has children
// becomes a terminus in the tree and its subtree is not descended; the
// nested-JSON form cannot carry both under one key. Converting back
// through FromTree therefore loses Items that extend a stored prefix;
// whether the server ever produces that shape is a property of the
// database, not of this library.
func (s *ItemSpace) Tree() (Element, error) {
	var paths [][]Component
	s.root.collect(&paths)
	return UnflattenFromList(false, paths)
}

func (n *Node) collect(paths *[][]Component) {
	if n.leaf {
		*paths = append(*paths, n.item)
		return
	}
	for _, child := range n.children {
		child.collect(paths)
	}
}

// FromTree builds an ItemSpace from every root-to-leaf key path of a tree,
// the inverse of Tree.
func FromTree(e Element) *ItemSpace {
	s := NewItemSpace()
	for _, path := range FlattenToList(e) {
		s.Insert(Item(path))
	}
	return s
}
