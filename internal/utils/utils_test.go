package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"hist", true},
		{"Hist", true},
		{"don't", true},
		{"re-en", true},
		{"", false},
		{"123", false},
		{"a1", true},
		{"he llo", false},
		{"wh@t", false},
		{"zzzz", false},
		{"zz", true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, IsValidInput(tc.input), "input %q", tc.input)
	}
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "65,535", FormatWithCommas(65535))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}

func TestConfigDirFor(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	home := filepath.FromSlash("/home/u")

	assert.Equal(t, filepath.Join("/xdg", AppName), configDirFor("linux", home, env(map[string]string{"XDG_CONFIG_HOME": "/xdg"})))
	assert.Equal(t, filepath.Join(home, ".config", AppName), configDirFor("linux", home, env(nil)))
	assert.Equal(t, filepath.Join("C:/AppData", AppName), configDirFor("windows", home, env(map[string]string{"APPDATA": "C:/AppData"})))
	assert.Equal(t, filepath.Join(home, "."+AppName), configDirFor("plan9", home, env(nil)))
}

func TestTOMLRoundTripAndRecovery(t *testing.T) {
	type section struct {
		Size int    `toml:"size"`
		Name string `toml:"name"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, SaveTOMLFile(doc{Main: section{Size: 3, Name: "x"}}, path))
	assert.True(t, FileExists(path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, 3, got.Main.Size)

	require.NoError(t, os.WriteFile(path, []byte("[main]\nsize = \"three\"\nname = \"y\"\n"), 0o644))
	assert.Error(t, LoadTOMLFile(path, &got))

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	main, ok := ExtractSection(raw, "main")
	require.True(t, ok)
	_, ok = ExtractInt64(main, "size")
	assert.False(t, ok)
	name, ok := ExtractString(main, "name")
	assert.True(t, ok)
	assert.Equal(t, "y", name)
}
