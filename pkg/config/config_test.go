package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := InitConfig(path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[server]
max_limit = 5
hot_words = 0

[corpus]
strip_chars = "!?"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Server.MaxLimit)
	assert.Equal(t, 0, cfg.Server.HotWords)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, "!?", cfg.Corpus.StripChars)
	assert.Equal(t, DefaultConfig().CLI, cfg.CLI)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[server]
max_limit = "lots"
max_prefix = 12

[cli]
default_top_k = 3
default_no_filter = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.MaxLimit, cfg.Server.MaxLimit)
	assert.Equal(t, 12, cfg.Server.MaxPrefix)
	assert.Equal(t, 3, cfg.CLI.DefaultTopK)
	assert.True(t, cfg.CLI.DefaultNoFilter)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.CLI.DefaultLimit = 7
	require.NoError(t, SaveConfig(cfg, path))

	got, used := LoadConfigWithPriority(path, nil)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, got.CLI.DefaultLimit)

	got, used = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Equal(t, "", used)
	assert.Equal(t, DefaultConfig(), got)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	limit := 3
	require.NoError(t, cfg.Update(path, &limit, nil, nil))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Server.MaxLimit)
	assert.Equal(t, cfg.Server.MaxPrefix, loaded.Server.MaxPrefix)
}

func TestUpdateInMemory(t *testing.T) {
	cfg := DefaultConfig()
	hot := 16
	require.NoError(t, cfg.Update("", nil, nil, &hot))
	assert.Equal(t, 16, cfg.Server.HotWords)
}

func TestTokenizer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.MinWordLen = 2
	tk := cfg.Tokenizer()
	assert.Equal(t, cfg.Corpus.StripChars, tk.StripChars)
	assert.Equal(t, 2, tk.MinLen)
}
