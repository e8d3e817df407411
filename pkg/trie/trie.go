/*
Package trie implements a case-insensitive prefix tree that counts how often
each word was inserted.

A trie is bulk loaded once and then queried:

	t := trie.New(words...)
	t.Lookup("Prague")          // exact, case-insensitive presence
	t.AlphabeticalList()        // distinct words, ascending
	t.KMostCommon(10)           // top words by frequency
	t.Autocomplete("hist")      // best word under a prefix

Ranking is the same everywhere: higher count first, ties broken by the
smaller word. A Trie is not safe for concurrent mutation; callers that share
one across goroutines must serialize writes themselves.
*/
package trie

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Trie owns the root node and every node below it.
type Trie struct {
	root  *Node
	words int
	total int
	nodes int
	depth int
}

// Stats summarizes the shape of a trie.
type Stats struct {
	Words    int
	Total    int
	Nodes    int
	MaxDepth int
	MaxCount int
}

// New builds a trie containing every given word. Repeated words add to the
// frequency of the word; the order of words does not matter.
func New(words ...string) *Trie {
	t := &Trie{root: newNode(""), nodes: 1}
	for _, w := range words {
		t.Insert(w)
	}
	if len(words) > 0 {
		log.Debugf("Built trie: %d tokens, %d distinct words, %d nodes", len(words), t.words, t.nodes)
	}
	return t
}

// Insert adds one occurrence of word. The empty word marks the root.
func (t *Trie) Insert(word string) {
	t.add(word, 1)
}

// AddWord adds word with a precomputed frequency, as if it had been
// inserted frequency times. Non-positive frequencies are ignored.
func (t *Trie) AddWord(word string, frequency int) {
	if frequency <= 0 {
		return
	}
	t.add(word, frequency)
}

func (t *Trie) add(word string, n int) {
	folded := strings.ToLower(word)
	node := t.root
	depth := 0
	for i := 0; i < len(folded); {
		r, size := utf8.DecodeRuneInString(folded[i:])
		i += size
		depth++
		next := node.Child(r)
		if next == nil {
			next = node.addChild(r, folded[:i])
			t.nodes++
		}
		node = next
	}
	if !node.Terminal {
		node.Terminal = true
		t.words++
		if depth > t.depth {
			t.depth = depth
		}
	}
	node.Count += n
	t.total += n
}

// find walks the case-folded word from the root. It returns nil as soon as
// a needed child is missing.
func (t *Trie) find(word string) *Node {
	node := t.root
	for _, r := range strings.ToLower(word) {
		node = node.Child(r)
		if node == nil {
			return nil
		}
	}
	return node
}

// Lookup reports whether word was inserted. Being a prefix of another word
// does not count.
func (t *Trie) Lookup(word string) bool {
	node := t.find(word)
	return node != nil && node.Terminal
}

// Frequency returns how many times word was inserted, or 0.
func (t *Trie) Frequency(word string) int {
	if node := t.find(word); node != nil {
		return node.Count
	}
	return 0
}

// HasPrefix reports whether any inserted word starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	node := t.find(prefix)
	if node == nil {
		return false
	}
	return node.Terminal || node.Len() > 0
}

// Root exposes the root node for read-only traversal.
func (t *Trie) Root() *Node {
	return t.root
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

// Total returns the sum of all occurrence counts.
func (t *Trie) Total() int {
	return t.total
}

// Stats reports word, token and node counts plus the deepest word and highest count.
func (t *Trie) Stats() Stats {
	s := Stats{
		Words:    t.words,
		Total:    t.total,
		Nodes:    t.nodes,
		MaxDepth: t.depth,
	}
	walk(t.root, func(n *Node) {
		if n.Count > s.MaxCount {
			s.MaxCount = n.Count
		}
	})
	return s
}

// walk visits from and its whole subtree in pre-order, children in
// ascending rune order. It uses an explicit stack so depth is never bound
// by the call stack.
func walk(from *Node, visit func(*Node)) {
	stack := []*Node{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		keys := n.keys()
		// push in reverse so the smallest key is popped first
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, n.children[keys[i]])
		}
	}
}
