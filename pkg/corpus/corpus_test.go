package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"punctuation stripped", "To be or not To be: that is the question.", []string{"To", "be", "or", "not", "To", "be", "that", "is", "the", "question"}},
		{"exclamations", "Yes! Yes! Goal! Goal! Goal!", []string{"Yes", "Yes", "Goal", "Goal", "Goal"}},
		{"newlines and tabs", "one\ntwo\r\nthree\tfour", []string{"one", "two", "three", "four"}},
		{"digits and brackets", "[Act 1] Scene_2", []string{"Act", "Scene"}},
		{"strip inside token", "a.b don't", []string{"ab", "don't"}},
		{"only junk", "123 ... ;;", nil},
		{"empty", "", nil},
	}

	tk := NewTokenizer()
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := tk.Tokenize(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTokenizeMinLen(t *testing.T) {
	tk := &Tokenizer{StripChars: DefaultStripChars, MinLen: 3}
	got, err := tk.Tokenize(strings.NewReader("a an ant ants"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ant", "ants"}, got)
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("book.TXT")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = DetectFormat("/tmp/counts.tsv")
	require.NoError(t, err)
	assert.Equal(t, FormatFreq, f)

	_, err = DetectFormat("dict_0001.bin")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), ".txt, .text, .tsv, .freq")
}

func TestLoadReaderText(t *testing.T) {
	tr := trie.New()
	l := NewLoader(nil, 0)

	stats, err := l.LoadReader(tr, strings.NewReader("T ten tenet ten T"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Tokens)
	assert.Equal(t, 3, stats.Words)
	assert.Equal(t, "ten", tr.Autocomplete("Ten"))
	assert.Equal(t, 2, tr.Frequency("t"))
}

func TestLoadReaderFreq(t *testing.T) {
	tr := trie.New()
	l := NewLoader(nil, 0)

	input := "# counts\nthe\t154\n\na 122\ni 122\nzero 0\n"
	stats, err := l.LoadReader(tr, strings.NewReader(input), FormatFreq)
	require.NoError(t, err)
	assert.Equal(t, 398, stats.Tokens)
	assert.Equal(t, 3, stats.Words)
	assert.False(t, tr.Lookup("zero"))

	top, err := tr.KMostCommon(3)
	require.NoError(t, err)
	assert.Equal(t, []trie.WordCount{{Word: "the", Count: 154}, {Word: "a", Count: 122}, {Word: "i", Count: 122}}, top)
}

func TestLoadReaderFreqErrors(t *testing.T) {
	l := NewLoader(nil, 0)
	for _, input := range []string{"the", "the x", "the -1", "a b 3"} {
		_, err := l.LoadReader(trie.New(), strings.NewReader(input), FormatFreq)
		assert.Error(t, err, input)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("history history historian"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("histogram 5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	tr := trie.New()
	stats, err := NewLoader(nil, 0).Load(tr, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 8, stats.Tokens)
	assert.Equal(t, 3, stats.Words)
	assert.Equal(t, "histogram", tr.Autocomplete("hist"))
	assert.False(t, tr.Lookup("ignored"))
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := NewLoader(nil, 0).LoadDir(trie.New(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadFileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("word ", 100)), 0o644))

	_, err := NewLoader(nil, 10).LoadFile(trie.New(), path)
	assert.Error(t, err)

	_, err = NewLoader(nil, 0).LoadFile(trie.New(), path)
	assert.NoError(t, err)
}
