package suggest

import (
	"sync"
	"sync/atomic"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache indexes the best ranked words in a patricia trie. The cached
// set is always a prefix of the global ranking, so whenever it holds any
// word under a prefix, its best word there is also the global best.
type HotCache struct {
	hotTrie  *patricia.Trie
	size     int
	maxWords int
	hits     atomic.Int64
	misses   atomic.Int64
	mu       sync.RWMutex
}

// NewHotCache creates an empty cache holding at most maxWords words.
func NewHotCache(maxWords int) *HotCache {
	return &HotCache{
		hotTrie:  patricia.NewTrie(),
		maxWords: maxWords,
	}
}

// Cap returns the maximum number of cached words.
func (hc *HotCache) Cap() int {
	return hc.maxWords
}

// Populate replaces the cache content with ranked, which must be the top
// of the ranking in rank order (as KMostCommon returns it).
func (hc *HotCache) Populate(ranked []trie.WordCount) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.hotTrie = patricia.NewTrie()
	hc.size = 0
	for _, wc := range ranked {
		if hc.size >= hc.maxWords {
			break
		}
		// the empty word only matches the empty prefix, which Best never serves
		if wc.Word == "" {
			continue
		}
		hc.hotTrie.Insert(patricia.Prefix(wc.Word), wc.Count)
		hc.size++
	}
	log.Debugf("Populated hot cache with %d words", hc.size)
}

// Best returns the best cached word starting with lowerPrefix. The prefix
// must already be case-folded. An empty prefix is never served from cache.
func (hc *HotCache) Best(lowerPrefix string) (string, bool) {
	if lowerPrefix == "" {
		return "", false
	}
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	var (
		bestWord  string
		bestCount int
		found     bool
	)
	err := hc.hotTrie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		word := string(p)
		if !found || count > bestCount || (count == bestCount && word < bestWord) {
			bestWord, bestCount, found = word, count, true
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error searching hot cache: %v", err)
		found = false
	}

	if found {
		hc.hits.Add(1)
	} else {
		hc.misses.Add(1)
	}
	return bestWord, found
}

// Stats returns cache counters.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return map[string]int{
		"hotCacheWords":  hc.size,
		"maxHotWords":    hc.maxWords,
		"hotCacheHits":   int(hc.hits.Load()),
		"hotCacheMisses": int(hc.misses.Load()),
	}
}
