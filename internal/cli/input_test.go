package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, input string, noFilter bool) (string, *suggest.Completer) {
	t.Helper()
	c := suggest.NewCompleter(8)
	for _, w := range strings.Fields("history history historian hiss the the the a") {
		c.Insert(w)
	}

	var out bytes.Buffer
	h := NewInputHandler(c, 1, 10, 3, 2, noFilter)
	h.SetIO(strings.NewReader(input), &out)
	require.NoError(t, h.Start())
	return out.String(), c
}

func TestPrefixQuery(t *testing.T) {
	out, _ := runCLI(t, "hist\n", false)
	assert.Contains(t, out, "best: history")
	assert.Contains(t, out, " 1. history")
	assert.Contains(t, out, " 2. historian")
	assert.NotContains(t, out, "hiss")
}

func TestPrefixValidation(t *testing.T) {
	out, _ := runCLI(t, "abcdefghijkl\n123\nqq\n", false)
	assert.Contains(t, out, "Prefix too long")
	assert.Contains(t, out, "filtered out")
	assert.Contains(t, out, "No words start with prefix: 'qq'")

	out, _ = runCLI(t, "123\n", true)
	assert.NotContains(t, out, "filtered out")
}

func TestFilteredPrefixWithMatches(t *testing.T) {
	out, _ := runCLI(t, ":add 1984\n19\n", false)
	assert.Contains(t, out, "Prefix '19' was filtered out")

	out, _ = runCLI(t, ":add 1984\n19\n", true)
	assert.Contains(t, out, "best: 1984")
}

func TestCommands(t *testing.T) {
	out, c := runCLI(t, ":top\n:top 1\n:top -1\n:top x\n:has HISS\n:has nope\n:add nope 4\n:list\n:stats\n:bogus\n:help", false)

	assert.Contains(t, out, " 1. the")
	assert.Contains(t, out, " 2. history")
	assert.Contains(t, out, "k must not be negative")
	assert.Contains(t, out, "invalid k: x")
	assert.Contains(t, out, "HISS: yes (freq: 1)")
	assert.Contains(t, out, "nope: no")
	assert.Contains(t, out, "added nope (freq: 4)")
	assert.Contains(t, out, "6 words")
	assert.Contains(t, out, "totalWords")
	assert.Contains(t, out, "unknown command :bogus")
	assert.Contains(t, out, ":top [k]")

	assert.Equal(t, 4, c.Frequency("nope"))
}
