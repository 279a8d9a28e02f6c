package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName is returned by Insert when the trimmed name is empty.
	ErrEmptyName = errors.New("item name must not be empty")
	// ErrBadPath is returned by Insert when a path index is out of range.
	ErrBadPath = errors.New("item path does not address an item")
)

// Handle addresses one item in a Tree. Handles stay valid until the item
// (or an ancestor) is extracted.
type Handle int

const noParent Handle = -1

type node struct {
	name     string
	desc     string
	parent   Handle
	children []Handle
	live     bool
}

// Tree is an ordered forest of items stored in an arena. Parent and child
// links are handles into the arena rather than nested slices, so moving an
// item between trees copies it out as an Item record and never aliases.
//
// The zero value is an empty tree ready for use. A Tree is not safe for
// concurrent use.
type Tree struct {
	nodes []node
	roots []Handle
}

// NewTree builds a tree from item records, preserving order at every level.
//
// Postcondition: Items() returns records equal to items.
func NewTree(items []Item) *Tree {
	t := &Tree{}
	for _, it := range items {
		t.Append(it)
	}
	return t
}

// Len returns the number of top-level items.
func (t *Tree) Len() int {
	return len(t.roots)
}

// Roots returns the handles of the top-level items in order.
func (t *Tree) Roots() []Handle {
	return append([]Handle(nil), t.roots...)
}

// Children returns the handles of the items directly inside h.
//
// Precondition: h must be live.
func (t *Tree) Children(h Handle) []Handle {
	return append([]Handle(nil), t.nodes[h].children...)
}

// Name returns the stored name of h.
func (t *Tree) Name(h Handle) string {
	return t.nodes[h].name
}

// Desc returns the stored description of h.
func (t *Tree) Desc(h Handle) string {
	return t.nodes[h].desc
}

// Item returns the record of h and its whole subtree.
//
// Precondition: h must be live.
func (t *Tree) Item(h Handle) Item {
	n := t.nodes[h]
	it := Item{Name: n.name, Desc: n.desc}
	for _, c := range n.children {
		it.Contains = append(it.Contains, t.Item(c))
	}
	return it
}

// Items returns the records of every top-level item in order. The result is
// never nil.
func (t *Tree) Items() []Item {
	out := make([]Item, 0, len(t.roots))
	for _, h := range t.roots {
		out = append(out, t.Item(h))
	}
	return out
}

// Append adds item and its subtree at the end of the top level.
//
// Postcondition: Returns the handle of the new top-level item.
func (t *Tree) Append(item Item) Handle {
	h := t.add(item, noParent)
	t.roots = append(t.roots, h)
	return h
}

func (t *Tree) add(item Item, parent Handle) Handle {
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, node{name: item.Name, desc: item.Desc, parent: parent, live: true})
	for _, c := range item.Contains {
		ch := t.add(c, h)
		t.nodes[h].children = append(t.nodes[h].children, ch)
	}
	return h
}

// Find returns the first top-level item whose name matches target. Nested
// items are never matched.
//
// Postcondition: Returns (handle, true) on a match, or (0, false).
func (t *Tree) Find(target string) (Handle, bool) {
	want := Normalize(target)
	for _, h := range t.roots {
		if Normalize(t.nodes[h].name) == want {
			return h, true
		}
	}
	return 0, false
}

// Extract removes and returns the first item matching target anywhere in the
// tree. Each level is scanned in full before descending, and children are
// visited in order, so a top-level match always wins over a nested one.
//
// Postcondition: On a match exactly one item (with its subtree) is removed
// and returned; otherwise the tree is unchanged and ok is false.
func (t *Tree) Extract(target string) (item Item, ok bool) {
	h, found := t.search(t.roots, Normalize(target))
	if !found {
		return Item{}, false
	}
	item = t.Item(h)
	t.remove(h)
	return item, true
}

func (t *Tree) search(level []Handle, want string) (Handle, bool) {
	for _, h := range level {
		if Normalize(t.nodes[h].name) == want {
			return h, true
		}
	}
	for _, h := range level {
		if found, ok := t.search(t.nodes[h].children, want); ok {
			return found, true
		}
	}
	return 0, false
}

func (t *Tree) remove(h Handle) {
	parent := t.nodes[h].parent
	if parent == noParent {
		t.roots = without(t.roots, h)
	} else {
		t.nodes[parent].children = without(t.nodes[parent].children, h)
	}
	t.kill(h)
}

func (t *Tree) kill(h Handle) {
	for _, c := range t.nodes[h].children {
		t.kill(c)
	}
	t.nodes[h] = node{parent: noParent}
}

func without(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Resolve follows positional indices from the top level and returns the
// addressed item.
//
// Postcondition: Returns ErrBadPath when path is empty or any index is out of
// range.
func (t *Tree) Resolve(path []int) (Handle, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	level := t.roots
	var h Handle
	for depth, idx := range path {
		if idx < 0 || idx >= len(level) {
			return 0, fmt.Errorf("%w: index %d at depth %d (have %d)", ErrBadPath, idx, depth, len(level))
		}
		h = level[idx]
		level = t.nodes[h].children
	}
	return h, nil
}

// Insert appends a new empty item at the top level (empty path) or inside the
// item addressed by path.
//
// Precondition: name must contain a non-space character.
// Postcondition: Returns the new handle, or ErrEmptyName / ErrBadPath with
// the tree unchanged.
func (t *Tree) Insert(path []int, name, desc string) (Handle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	desc = strings.TrimSpace(desc)
	if len(path) == 0 {
		return t.Append(Item{Name: name, Desc: desc}), nil
	}
	parent, err := t.Resolve(path)
	if err != nil {
		return 0, err
	}
	h := t.add(Item{Name: name, Desc: desc}, parent)
	t.nodes[parent].children = append(t.nodes[parent].children, h)
	return h, nil
}

// Entry is one row of a flattened tree walk.
type Entry struct {
	Handle Handle
	Depth  int
	Path   []int
	Item   Item
}

// Flatten walks the tree depth-first in display order. Each entry's Item has
// no Contains; children follow as their own entries.
func (t *Tree) Flatten() []Entry {
	var out []Entry
	var walk func(level []Handle, prefix []int)
	walk = func(level []Handle, prefix []int) {
		for i, h := range level {
			path := append(append([]int(nil), prefix...), i)
			n := t.nodes[h]
			out = append(out, Entry{
				Handle: h,
				Depth:  len(prefix),
				Path:   path,
				Item:   Item{Name: n.name, Desc: n.desc},
			})
			walk(n.children, path)
		}
	}
	walk(t.roots, nil)
	return out
}

// Count returns the number of live items at every depth.
func (t *Tree) Count() int {
	n := 0
	for _, nd := range t.nodes {
		if nd.live {
			n++
		}
	}
	return n
}
