/*
Package config manages the TOML config for wordtrie.

A missing file is created with defaults. A file that fails to decode is
recovered section by section, so one bad value only resets its own key.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/corpus"
	"github.com/charmbracelet/log"
)

// FileName is the config file name inside the config directory.
const FileName = "wordtrie.toml"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
	MaxPrefix int `toml:"max_prefix"`
	HotWords  int `toml:"hot_words"`
}

// CorpusConfig controls how corpus files are tokenized and loaded.
type CorpusConfig struct {
	StripChars  string `toml:"strip_chars"`
	MinWordLen  int    `toml:"min_word_len"`
	MaxFileSize int64  `toml:"max_file_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	DefaultTopK   int `toml:"default_top_k"`
	DefaultMinLen int `toml:"default_min_len"`
	DefaultMaxLen int `toml:"default_max_len"`

	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 0,
			MaxPrefix: 60,
			HotWords:  2048,
		},
		Corpus: CorpusConfig{
			StripChars:  corpus.DefaultStripChars,
			MinWordLen:  1,
			MaxFileSize: 64 << 20,
		},
		CLI: CliConfig{
			DefaultLimit:  10,
			DefaultTopK:   10,
			DefaultMinLen: 1,
			DefaultMaxLen: 24,

			DefaultNoFilter: false,
		},
	}
}

// Tokenizer builds a corpus tokenizer from the corpus section.
func (c *Config) Tokenizer() *corpus.Tokenizer {
	return &corpus.Tokenizer{
		StripChars: c.Corpus.StripChars,
		MinLen:     c.Corpus.MinWordLen,
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path from the PathResolver
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}
	if resolver == nil {
		return DefaultConfig(), ""
	}

	defaultPath, err := resolver.GetConfigPath(FileName)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return InitConfig(defaultPath), defaultPath
}

// InitConfig loads config from file or creates default if missing. It
// never fails; problems are logged and defaults are used instead.
func InitConfig(configPath string) *Config {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return cfg
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

// tryPartialParse keeps whatever keys still parse from a broken file.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "corpus"); ok {
		extractCorpusConfig(section, &cfg.Corpus)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "hot_words"); ok {
		server.HotWords = val
	}
}

func extractCorpusConfig(data map[string]any, c *CorpusConfig) {
	if val, ok := utils.ExtractString(data, "strip_chars"); ok {
		c.StripChars = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		c.MinWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_file_size"); ok {
		c.MaxFileSize = int64(val)
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_top_k"); ok {
		cli.DefaultTopK = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// Update changes the server values and saves to file. An empty configPath
// only updates c.
func (c *Config) Update(configPath string, maxLimit, maxPrefix, hotWords *int) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if hotWords != nil {
		server.HotWords = *hotWords
	}
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
