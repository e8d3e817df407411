package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for trie queries.
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	log          *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		log:       logger.New("server"),
	}
}

// SetConfigPath sets the file that "config" requests write to. Without it
// changes only live in memory.
func (s *Server) SetConfigPath(path string) {
	s.configPath = path
}

// Start serves requests until the input ends. A clean end of input returns
// nil; a stream that cannot be decoded any further returns an error.
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		// Framing first keeps the stream in sync when a single request has
		// fields of the wrong type.
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.sendError(requestID(raw), fmt.Sprintf("invalid request: %v", err), 400)
			continue
		}
		s.handleRequest(req)
	}
}

// requestID digs the id out of a request that did not decode, so the error
// can still be matched by the client.
func requestID(raw msgpack.RawMessage) string {
	var fields map[string]any
	if err := msgpack.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	id, _ := fields["id"].(string)
	return id
}

func (s *Server) handleRequest(req Request) {
	s.log.Debug("Request", "id", req.ID, "action", req.Action)

	switch req.Action {
	case "complete":
		s.handleComplete(req)
	case "autocomplete":
		s.handleAutocomplete(req)
	case "lookup":
		s.handleLookup(req)
	case "top":
		s.handleTop(req)
	case "list":
		words := s.completer.AlphabeticalList()
		s.sendResponse(ListResponse{ID: req.ID, Words: words, Count: len(words)})
	case "insert":
		s.handleInsert(req)
	case "config":
		s.handleConfig(req)
	case "stats":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok", Stats: s.completer.Stats()})
	case "health":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case "":
		s.sendError(req.ID, "missing 'action'", 400)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// validatePrefix applies the configured prefix length bounds.
func (s *Server) validatePrefix(req Request) bool {
	n := utf8.RuneCountInString(req.Prefix)
	if n < s.config.Server.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.Server.MinPrefix), 400)
		return false
	}
	if s.config.Server.MaxPrefix > 0 && n > s.config.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
		return false
	}
	return true
}

func (s *Server) handleComplete(req Request) {
	if !s.validatePrefix(req) {
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if s.config.Server.MaxLimit > 0 && limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(req.Prefix, limit)
	elapsed := time.Since(start)

	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: toResponseSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleAutocomplete(req Request) {
	if !s.validatePrefix(req) {
		return
	}
	start := time.Now()
	word := s.completer.Autocomplete(req.Prefix)
	s.sendResponse(AutocompleteResponse{
		ID:        req.ID,
		Word:      word,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	s.sendResponse(LookupResponse{
		ID:        req.ID,
		Found:     s.completer.Lookup(req.Word),
		Frequency: s.completer.Frequency(req.Word),
	})
}

func (s *Server) handleTop(req Request) {
	k := s.config.CLI.DefaultTopK
	if req.K != nil {
		k = *req.K
	}

	start := time.Now()
	top, err := s.completer.KMostCommon(k)
	if err != nil {
		code := 500
		if errors.Is(err, trie.ErrInvalidK) {
			code = 400
		}
		s.sendError(req.ID, err.Error(), code)
		return
	}

	suggestions := make([]CompletionSuggestion, len(top))
	for i, wc := range top {
		suggestions[i] = CompletionSuggestion{Word: wc.Word, Frequency: wc.Count}
	}
	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleInsert(req Request) {
	switch {
	case req.Frequency < 0:
		s.sendError(req.ID, "frequency must not be negative", 400)
		return
	case req.Frequency == 0:
		s.completer.Insert(req.Word)
	default:
		s.completer.AddWord(req.Word, req.Frequency)
	}
	s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleConfig(req Request) {
	for _, v := range []*int{req.MaxLimit, req.MaxPrefix, req.HotWords} {
		if v != nil && *v < 0 {
			s.sendError(req.ID, "config values must not be negative", 400)
			return
		}
	}
	if err := s.config.Update(s.configPath, req.MaxLimit, req.MaxPrefix, req.HotWords); err != nil {
		s.sendError(req.ID, fmt.Sprintf("failed to save config: %v", err), 500)
		return
	}
	s.log.Debugf("Server config updated: %+v", s.config.Server)
	s.sendResponse(StatusResponse{
		ID:     req.ID,
		Status: "ok",
		Stats: map[string]int{
			"maxLimit":  s.config.Server.MaxLimit,
			"maxPrefix": s.config.Server.MaxPrefix,
			"hotWords":  s.config.Server.HotWords,
		},
	})
}

func toResponseSuggestions(suggestions []suggest.Suggestion) []CompletionSuggestion {
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Frequency: sg.Frequency}
	}
	return out
}

// sendResponse encodes one response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.log.Debug("Request failed", "id", id, "error", message, "code", code)
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
