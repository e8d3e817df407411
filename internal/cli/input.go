// Package cli handles interactive queries against a loaded word trie, for
// exploring a corpus and debugging rankings.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

const helpText = `commands:
  <prefix>          best word and completions for a prefix
  :top [k]          k most common words
  :has <word>       whether a word was inserted, and how often
  :add <word> [n]   insert a word (n times)
  :list             every word in alphabetical order
  :stats            trie statistics
  :help             this text`

// InputHandler reads queries line by line and prints the answers. Bare
// lines are prefixes; lines starting with ':' are commands.
type InputHandler struct {
	completer       suggest.ICompleter
	in              io.Reader
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	topK            int
	noFilter        bool
	interactive     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit, topK int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		in:              os.Stdin,
		out:             log.NewWithOptions(os.Stderr, log.Options{}),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		topK:            topK,
		noFilter:        noFilter,
		interactive:     term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// SetIO replaces stdin and stderr, mainly for tests. Prompts are only
// printed when r is a terminal.
func (h *InputHandler) SetIO(r io.Reader, w io.Writer) {
	h.in = r
	h.out = log.NewWithOptions(w, log.Options{})
	h.interactive = false
	if f, ok := r.(*os.File); ok {
		h.interactive = term.IsTerminal(int(f.Fd()))
	}
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	reader := bufio.NewReader(h.in)
	if h.interactive {
		h.out.Print("WordTrie CLI")
		h.out.Print("type a prefix and press Enter, :help for commands (Ctrl+C to exit):")
	}

	for {
		if h.interactive {
			h.out.Print("> ")
		}
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	if !strings.HasPrefix(line, ":") {
		h.handlePrefix(line)
		return
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		h.out.Print(helpText)
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "top":
		h.handleTop(args)
	case "has":
		if len(args) != 1 {
			h.out.Error("usage: :has <word>")
			return
		}
		if h.completer.Lookup(args[0]) {
			h.out.Printf("%s: yes (freq: %s)", wordStyle.Render(args[0]), utils.FormatWithCommas(h.completer.Frequency(args[0])))
		} else {
			h.out.Printf("%s: no", wordStyle.Render(args[0]))
		}
	case "add":
		h.handleAdd(args)
	case "list":
		words := h.completer.AlphabeticalList()
		for _, w := range words {
			h.out.Print(w)
		}
		h.out.Printf("%s words", utils.FormatWithCommas(len(words)))
	case "stats":
		stats := h.completer.Stats()
		for _, key := range []string{"totalWords", "totalTokens", "nodes", "maxDepth", "maxFrequency", "hotCacheWords"} {
			h.out.Printf("%-14s %s", key, utils.FormatWithCommas(stats[key]))
		}
	case "help":
		h.out.Print(helpText)
	default:
		h.out.Errorf("unknown command :%s (try :help)", cmd)
	}
}

func (h *InputHandler) handleTop(args []string) {
	k := h.topK
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			h.out.Errorf("invalid k: %s", args[0])
			return
		}
		k = n
	}
	top, err := h.completer.KMostCommon(k)
	if err != nil {
		h.out.Errorf("top: %v", err)
		return
	}
	for i, wc := range top {
		h.out.Printf("%2d. %-30s (freq: %8s)", i+1, wordStyle.Render(wc.Word), utils.FormatWithCommas(wc.Count))
	}
}

func (h *InputHandler) handleAdd(args []string) {
	if len(args) == 0 || len(args) > 2 {
		h.out.Error("usage: :add <word> [n]")
		return
	}
	n := 1
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			h.out.Errorf("invalid count: %s", args[1])
			return
		}
		n = v
	}
	h.completer.AddWord(args[0], n)
	h.out.Printf("added %s (freq: %s)", wordStyle.Render(args[0]), utils.FormatWithCommas(h.completer.Frequency(args[0])))
}

// handlePrefix validates a prefix and prints its best word and completions.
func (h *InputHandler) handlePrefix(prefix string) {
	n := len([]rune(prefix))
	if n < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if h.maxPrefixLength > 0 && n > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		if h.completer.HasPrefix(prefix) {
			h.out.Warnf("Prefix '%s' was filtered out (words match it, use -no-filter)", prefix)
		} else {
			h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		}
		return
	}
	if !h.completer.HasPrefix(prefix) {
		h.out.Warnf("No words start with prefix: '%s'", prefix)
		return
	}

	start := time.Now()
	best := h.completer.Autocomplete(prefix)
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	h.out.Printf("best: %s", wordStyle.Render(best))
	for i, s := range suggestions {
		h.out.Printf("%2d. %-30s (freq: %8s)", i+1, wordStyle.Render(s.Word), utils.FormatWithCommas(s.Frequency))
	}
}
