package suggest

import (
	"strings"
	"sync"
	"unicode"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

// Suggestion is a completion candidate and how often it was seen.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer guards a trie for shared use and answers autocomplete from a
// hot cache when it can. Writes mark the cache stale; it is rebuilt on the
// next autocomplete.
type Completer struct {
	mu       sync.RWMutex
	trie     *trie.Trie
	hotCache *HotCache
	hotDirty bool
}

// NewCompleter creates an empty completer. A hotWords <= 0 disables the
// hot cache.
func NewCompleter(hotWords int) *Completer {
	return NewCompleterFrom(trie.New(), hotWords)
}

// NewCompleterFrom wraps an already loaded trie.
func NewCompleterFrom(t *trie.Trie, hotWords int) *Completer {
	c := &Completer{trie: t, hotDirty: true}
	if hotWords > 0 {
		c.hotCache = NewHotCache(hotWords)
	}
	return c
}

func (c *Completer) Insert(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie.Insert(word)
	c.hotDirty = true
}

func (c *Completer) AddWord(word string, frequency int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie.AddWord(word, frequency)
	c.hotDirty = true
}

func (c *Completer) Lookup(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Lookup(word)
}

// HasPrefix reports whether any word starts with prefix.
func (c *Completer) HasPrefix(prefix string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.HasPrefix(prefix)
}

func (c *Completer) Frequency(word string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Frequency(word)
}

func (c *Completer) KMostCommon(k int) ([]trie.WordCount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.KMostCommon(k)
}

func (c *Completer) AlphabeticalList() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.AlphabeticalList()
}

// Autocomplete returns the most frequent word starting with prefix, or
// prefix unchanged when nothing matches.
func (c *Completer) Autocomplete(prefix string) string {
	c.refreshHotCache()

	c.mu.RLock()
	defer c.mu.RUnlock()
	// a write may have landed since the refresh; a stale cache is skipped
	if c.hotCache != nil && !c.hotDirty {
		if word, ok := c.hotCache.Best(strings.ToLower(prefix)); ok {
			return word
		}
	}
	return c.trie.Autocomplete(prefix)
}

func (c *Completer) refreshHotCache() {
	if c.hotCache == nil {
		return
	}
	c.mu.RLock()
	dirty := c.hotDirty
	c.mu.RUnlock()
	if !dirty {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hotDirty {
		return
	}
	top, err := c.trie.KMostCommon(c.hotCache.Cap())
	if err != nil {
		return
	}
	c.hotCache.Populate(top)
	c.hotDirty = false
}

// Complete returns up to limit words starting with prefix, best first.
// Capital letters typed in the prefix are carried over to the results.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	c.mu.RLock()
	matches := c.trie.Complete(prefix, limit)
	c.mu.RUnlock()

	positions := capitalPositions(prefix)
	suggestions := make([]Suggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = Suggestion{
			Word:      ApplyCapitalization(m.Word, positions),
			Frequency: m.Count,
		}
	}
	return suggestions
}

func capitalPositions(s string) []bool {
	var positions []bool
	upper := false
	for _, r := range s {
		isUpper := unicode.IsUpper(r)
		upper = upper || isUpper
		positions = append(positions, isUpper)
	}
	if !upper {
		return nil
	}
	return positions
}

// ApplyCapitalization uppercases the runes of word whose positions are
// marked in capitalPositions.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
		}
	}
	return string(wordRunes)
}

func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	s := c.trie.Stats()
	c.mu.RUnlock()

	stats := map[string]int{
		"totalWords":    s.Words,
		"totalTokens":   s.Total,
		"nodes":         s.Nodes,
		"maxDepth":      s.MaxDepth,
		"maxFrequency":  s.MaxCount,
		"hotCacheWords": 0,
	}
	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
