package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/charmbracelet/log"
)

// Inserter receives the words a Loader produces.
type Inserter interface {
	Insert(word string)
	AddWord(word string, frequency int)
}

// LoadStats counts what a load added.
type LoadStats struct {
	Files  int
	Tokens int
	Words  int
}

func (s *LoadStats) add(o LoadStats) {
	s.Files += o.Files
	s.Tokens += o.Tokens
	s.Words += o.Words
}

// Loader reads corpus files into an Inserter.
type Loader struct {
	tokenizer   *Tokenizer
	maxFileSize int64
	log         *log.Logger
}

// NewLoader creates a loader. A maxFileSize <= 0 means no limit.
func NewLoader(tokenizer *Tokenizer, maxFileSize int64) *Loader {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Loader{
		tokenizer:   tokenizer,
		maxFileSize: maxFileSize,
		log:         logger.New("corpus"),
	}
}

// Load reads path, which may be a single file or a directory.
func (l *Loader) Load(dst Inserter, path string) (LoadStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(dst, path)
	}
	return l.LoadFile(dst, path)
}

// LoadFile detects the format of filename and loads it.
func (l *Loader) LoadFile(dst Inserter, filename string) (LoadStats, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return LoadStats{}, err
	}
	if err := ValidateFile(filename, l.maxFileSize); err != nil {
		return LoadStats{}, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to open corpus file %s: %w", filename, err)
	}
	defer file.Close()

	stats, err := l.LoadReader(dst, file, format)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", filename, err)
	}
	stats.Files = 1
	l.log.Debugf("Loaded %s (%s): %d tokens, %d new words", filename, format, stats.Tokens, stats.Words)
	return stats, nil
}

// LoadDir loads every recognised file in dir, in name order. Files of an
// unknown format are skipped with a warning.
func (l *Loader) LoadDir(dst Inserter, dir string) (LoadStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to read corpus dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var total LoadStats
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		stats, err := l.LoadFile(dst, path)
		if errors.Is(err, ErrUnknownFormat) {
			l.log.Warnf("Skipping %s: unknown format", path)
			continue
		}
		if err != nil {
			return total, err
		}
		total.add(stats)
	}
	if total.Files == 0 {
		return total, fmt.Errorf("no corpus files found in %s", dir)
	}
	return total, nil
}

// LoadReader loads r as the given format. Words is only counted when dst
// also implements Lookup.
func (l *Loader) LoadReader(dst Inserter, r io.Reader, format FileFormat) (LoadStats, error) {
	switch format {
	case FormatText:
		return l.loadText(dst, r)
	case FormatFreq:
		return l.loadFreq(dst, r)
	}
	return LoadStats{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}

type lookuper interface {
	Lookup(word string) bool
}

func (l *Loader) loadText(dst Inserter, r io.Reader) (LoadStats, error) {
	var stats LoadStats
	lk, canLookup := dst.(lookuper)
	err := l.tokenizer.Each(r, func(w string) {
		if canLookup && !lk.Lookup(w) {
			stats.Words++
		}
		dst.Insert(w)
		stats.Tokens++
	})
	return stats, err
}

// loadFreq reads lines of "word<whitespace>count". Blank lines and lines
// starting with '#' are ignored.
func (l *Loader) loadFreq(dst Inserter, r io.Reader) (LoadStats, error) {
	var stats LoadStats
	lk, canLookup := dst.(lookuper)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, freq, err := parseFreqLine(line)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if freq == 0 {
			continue
		}
		if canLookup && !lk.Lookup(word) {
			stats.Words++
		}
		dst.AddWord(word, freq)
		stats.Tokens += freq
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read frequency list: %w", err)
	}
	return stats, nil
}

func parseFreqLine(line string) (string, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected 'word count', got %q", line)
	}
	freq, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid count for %q: %w", fields[0], err)
	}
	if freq < 0 {
		return "", 0, fmt.Errorf("negative count for %q: %d", fields[0], freq)
	}
	return fields[0], freq, nil
}
