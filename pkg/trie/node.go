package trie

import "slices"

// Node is one position in the trie. It holds data only; ranking between
// nodes is decided by the queries that need it.
type Node struct {
	// Text is the case-folded path from the root to this node.
	Text     string
	Terminal bool
	Count    int
	children map[rune]*Node
}

func newNode(text string) *Node {
	return &Node{Text: text}
}

// Child returns the child reached by r, or nil.
func (n *Node) Child(r rune) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

// Len reports the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

func (n *Node) addChild(r rune, text string) *Node {
	if n.children == nil {
		n.children = make(map[rune]*Node, 1)
	}
	child := newNode(text)
	n.children[r] = child
	return child
}

// keys returns the child runes in ascending order. Map iteration order is
// random, so alphabetical traversal has to sort explicitly.
func (n *Node) keys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	return keys
}
