/*
Package main loads a text corpus into a word trie and serves queries about
it, either over msgpack IPC or in an interactive CLI.

A corpus is one or more files or directories. Plain text (.txt) is cleaned
and split into words; frequency lists (.tsv, .freq) hold "word count" per
line. Every word is case folded, so "Prague" and "prague" are one word.

# Usage

Serve queries over stdin/stdout:

	wordtrie -corpus shakespeare.txt

Explore a corpus interactively:

	wordtrie -c -corpus books/ -top 20

Positional arguments are treated as extra corpus paths:

	wordtrie -c hamlet.txt macbeth.txt

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run in the user config directory (or passed with -config):

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60
	hot_words = 2048

	[corpus]
	strip_chars = ";,.?!:0123456789_[]"
	min_word_len = 1
	max_file_size = 67108864

	[cli]
	default_limit = 10
	default_top_k = 10
	default_min_len = 1
	default_max_len = 24
	default_no_filter = false

# Command Line Flags

	-corpus string
	    Comma separated corpus files or directories
	-config string
	    Path to a config file
	-d  Enable debug logging
	-c  Run the interactive CLI instead of the server
	-limit int
	    Number of completions to show (0 uses config)
	-top int
	    Default k for :top (0 uses config)
	-prmin int, -prmax int
	    Prefix length bounds in CLI mode (unset uses config)
	-no-filter
	    Accept any prefix in CLI mode (unset uses config)
	-version
	    Print the version and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/corpus"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// options holds the command line flags.
type options struct {
	showVersion bool
	corpusPaths string
	configPath  string
	debugMode   bool
	cliMode     bool
	limit       int
	topK        int
	minPrefix   int
	maxPrefix   int
	noFilter    bool
}

// newOptions registers every flag on fs. Defaults come from the built-in
// config until applyConfig sees the loaded file.
func newOptions(fs *flag.FlagSet) *options {
	defaults := config.DefaultConfig()
	opts := &options{}

	fs.BoolVar(&opts.showVersion, "version", false, "Show current version")
	fs.StringVar(&opts.corpusPaths, "corpus", "", "Comma separated corpus files or directories")
	fs.StringVar(&opts.configPath, "config", "", "Path to a config file")
	fs.BoolVar(&opts.debugMode, "d", false, "Toggle debug mode")
	fs.BoolVar(&opts.cliMode, "c", false, "Run CLI instead of the IPC server")
	fs.IntVar(&opts.limit, "limit", 0, "Number of completions to show (0 uses config)")
	fs.IntVar(&opts.topK, "top", 0, "Default k for :top (0 uses config)")
	fs.IntVar(&opts.minPrefix, "prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length in CLI mode")
	fs.IntVar(&opts.maxPrefix, "prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length in CLI mode")
	fs.BoolVar(&opts.noFilter, "no-filter", defaults.CLI.DefaultNoFilter, "Accept any prefix in CLI mode, including numbers and symbols")
	return opts
}

// applyConfig takes values from cfg for every flag not given on fs.
func (o *options) applyConfig(fs *flag.FlagSet, cfg *config.Config) {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})

	if o.limit <= 0 {
		o.limit = cfg.CLI.DefaultLimit
	}
	if o.topK <= 0 {
		o.topK = cfg.CLI.DefaultTopK
	}
	if !given["prmin"] {
		o.minPrefix = cfg.CLI.DefaultMinLen
	}
	if !given["prmax"] {
		o.maxPrefix = cfg.CLI.DefaultMaxLen
	}
	if !given["no-filter"] {
		o.noFilter = cfg.CLI.DefaultNoFilter
	}
}

// main wires config, corpus loading and the chosen frontend together.
func main() {
	sigHandler()
	opts := newOptions(flag.CommandLine)
	flag.Parse()

	if opts.showVersion {
		printVersion()
		os.Exit(0)
	}

	if opts.debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}
	cfg, usedConfig := config.LoadConfigWithPriority(opts.configPath, resolver)
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(usedConfig))
	opts.applyConfig(flag.CommandLine, cfg)

	completer := suggest.NewCompleter(cfg.Server.HotWords)
	paths := append(splitPaths(opts.corpusPaths), flag.Args()...)
	if len(paths) == 0 {
		log.Warn("No corpus given, starting with an empty trie...")
	}

	loader := corpus.NewLoader(cfg.Tokenizer(), cfg.Corpus.MaxFileSize)
	for _, p := range paths {
		stats, err := loader.Load(completer, p)
		if err != nil {
			log.Fatalf("Failed to load corpus %s: %v", p, err)
		}
		log.Debug("Corpus loaded", "path", p, "files", stats.Files, "tokens", stats.Tokens, "words", stats.Words)
	}

	if opts.cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", opts.minPrefix,
			"maxPrefix", opts.maxPrefix,
			"limit", opts.limit,
			"top", opts.topK,
			"noFilter", opts.noFilter)

		inputHandler := cli.NewInputHandler(completer, opts.minPrefix, opts.maxPrefix, opts.limit, opts.topK, opts.noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(completer.Stats())
	srv := server.NewServer(completer, cfg, os.Stdin, os.Stdout)
	srv.SetConfigPath(usedConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("[ WordTrie ] word frequencies and completions for a corpus")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the loaded trie.
func showStartupInfo(stats map[string]int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("words: %s distinct, %s total", utils.FormatWithCommas(stats["totalWords"]), utils.FormatWithCommas(stats["totalTokens"]))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
