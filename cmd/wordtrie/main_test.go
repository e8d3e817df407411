package main

import (
	"flag"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*flag.FlagSet, *options) {
	t.Helper()
	fs := flag.NewFlagSet("wordtrie", flag.ContinueOnError)
	opts := newOptions(fs)
	require.NoError(t, fs.Parse(args))
	return fs, opts
}

func TestApplyConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CLI.DefaultLimit = 4
	cfg.CLI.DefaultTopK = 6
	cfg.CLI.DefaultMinLen = 2
	cfg.CLI.DefaultMaxLen = 7
	cfg.CLI.DefaultNoFilter = true

	t.Run("config fills unset flags", func(t *testing.T) {
		fs, opts := parse(t)
		opts.applyConfig(fs, cfg)
		assert.Equal(t, 4, opts.limit)
		assert.Equal(t, 6, opts.topK)
		assert.Equal(t, 2, opts.minPrefix)
		assert.Equal(t, 7, opts.maxPrefix)
		assert.True(t, opts.noFilter)
	})

	t.Run("flags win", func(t *testing.T) {
		fs, opts := parse(t, "-limit", "9", "-prmin", "1", "-prmax", "30", "-no-filter=false")
		opts.applyConfig(fs, cfg)
		assert.Equal(t, 9, opts.limit)
		assert.Equal(t, 6, opts.topK)
		assert.Equal(t, 1, opts.minPrefix)
		assert.Equal(t, 30, opts.maxPrefix)
		assert.False(t, opts.noFilter)
	})
}

func TestSplitPaths(t *testing.T) {
	assert.Equal(t, []string{"a.txt", "books/"}, splitPaths(" a.txt,,books/ "))
	assert.Nil(t, splitPaths(""))
}
