// Package suggest serves queries over a word trie to the CLI and server,
// adding locking and a hot-word cache in front of the core trie.
package suggest

import "github.com/bastiangx/wordtrie/pkg/trie"

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for a prefix, best first
	Complete(prefix string, limit int) []Suggestion

	// Autocomplete returns the single best word for a prefix, or the prefix itself
	Autocomplete(prefix string) string

	// Lookup reports whether a word was inserted
	Lookup(word string) bool

	// HasPrefix reports whether any word starts with prefix
	HasPrefix(prefix string) bool

	// Frequency returns how often a word was inserted
	Frequency(word string) int

	// KMostCommon returns the k most frequent words
	KMostCommon(k int) ([]trie.WordCount, error)

	// AlphabeticalList returns every distinct word in order
	AlphabeticalList() []string

	// Insert adds one occurrence of a word
	Insert(word string)

	// AddWord adds a word with its frequency to the completer
	AddWord(word string, frequency int)

	// Stats returns statistics about the loaded words
	Stats() map[string]int
}
