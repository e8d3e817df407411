// Package corpus turns raw text and frequency lists into trie insertions.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultStripChars are removed from raw text before it is split into words.
const DefaultStripChars = ";,.?!:0123456789_[]"

// Tokenizer splits raw text into words.
type Tokenizer struct {
	// StripChars are deleted outright, so "don't!" becomes "don't".
	StripChars string
	// MinLen drops words shorter than this many runes.
	MinLen int
}

// NewTokenizer returns a tokenizer using DefaultStripChars.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{StripChars: DefaultStripChars, MinLen: 1}
}

// Tokenize reads r to the end and returns its words in order. Newlines,
// carriage returns and tabs separate words like spaces do.
func (tk *Tokenizer) Tokenize(r io.Reader) ([]string, error) {
	var words []string
	err := tk.Each(r, func(w string) {
		words = append(words, w)
	})
	return words, err
}

// Each calls fn for every word in r without holding the whole text.
func (tk *Tokenizer) Each(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		if w := tk.clean(scanner.Text()); w != "" {
			fn(w)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to tokenize text: %w", err)
	}
	return nil
}

// clean strips unwanted characters from a single whitespace-delimited token.
// Stripping never splits a token, so "a.b" becomes "ab".
func (tk *Tokenizer) clean(token string) string {
	if tk.StripChars != "" {
		token = strings.Map(func(r rune) rune {
			if strings.ContainsRune(tk.StripChars, r) {
				return -1
			}
			return r
		}, token)
	}
	token = strings.TrimFunc(token, unicode.IsSpace)
	if token == "" || utf8.RuneCountInString(token) < tk.MinLen {
		return ""
	}
	return token
}
