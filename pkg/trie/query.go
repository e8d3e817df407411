package trie

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidK is returned when a negative result size is requested.
var ErrInvalidK = errors.New("k must not be negative")

// WordCount pairs a word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// rankedBefore orders nodes by descending count, then ascending text.
func rankedBefore(a, b *Node) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Text < b.Text
}

func compareRank(a, b *Node) int {
	switch {
	case rankedBefore(a, b):
		return -1
	case rankedBefore(b, a):
		return 1
	}
	return 0
}

// worstFirst is a heap whose top is the lowest ranked node it holds.
type worstFirst []*Node

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return rankedBefore(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// best keeps the limit best ranked terminal nodes under from, in rank
// order. A limit <= 0 keeps all of them.
func best(from *Node, limit int) []*Node {
	h := &worstFirst{}
	walk(from, func(n *Node) {
		if !n.Terminal {
			return
		}
		if limit <= 0 || h.Len() < limit {
			heap.Push(h, n)
			return
		}
		if rankedBefore(n, (*h)[0]) {
			(*h)[0] = n
			heap.Fix(h, 0)
		}
	})
	nodes := []*Node(*h)
	slices.SortFunc(nodes, compareRank)
	return nodes
}

func toWordCounts(nodes []*Node) []WordCount {
	out := make([]WordCount, len(nodes))
	for i, n := range nodes {
		out[i] = WordCount{Word: n.Text, Count: n.Count}
	}
	return out
}

// AlphabeticalList returns every distinct word once in ascending order.
func (t *Trie) AlphabeticalList() []string {
	words := make([]string, 0, t.words)
	walk(t.root, func(n *Node) {
		if n.Terminal {
			words = append(words, n.Text)
		}
	})
	return words
}

// KMostCommon returns the k most frequent words, most frequent first. Ties
// go to the alphabetically smaller word. If k exceeds the number of
// distinct words, all of them are returned.
func (t *Trie) KMostCommon(k int) ([]WordCount, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if k == 0 {
		return []WordCount{}, nil
	}
	return toWordCounts(best(t.root, k)), nil
}

// Autocomplete returns the most frequent word starting with prefix. When
// no word has that prefix, prefix itself is returned unchanged.
func (t *Trie) Autocomplete(prefix string) string {
	node := t.find(prefix)
	if node == nil {
		return prefix
	}
	var top *Node
	walk(node, func(n *Node) {
		if n.Terminal && (top == nil || rankedBefore(n, top)) {
			top = n
		}
	})
	if top == nil {
		return prefix
	}
	return top.Text
}

// Complete returns up to limit words starting with prefix, ranked like
// KMostCommon. A limit <= 0 returns every match.
func (t *Trie) Complete(prefix string, limit int) []WordCount {
	node := t.find(prefix)
	if node == nil {
		return []WordCount{}
	}
	return toWordCounts(best(node, limit))
}
