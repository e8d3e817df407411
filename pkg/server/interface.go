/*
Package server implements msgpack IPC for word trie queries.

The server reads a stream of msgpack maps from its input (stdin by default)
and writes one msgpack response per request to its output (stdout). Logs go
to stderr so they never mix with responses.

# IPC

Every request carries an id and an action; the response echoes the id.

	{"id": "r1", "action": "complete", "p": "hist", "l": 5}
	{"id": "r1", "s": [{"w": "history", "f": 31}, {"w": "historian", "f": 2}], "c": 2, "t": 41}

	{"id": "r2", "action": "autocomplete", "p": "gen"}
	{"id": "r2", "w": "gentleman", "t": 12}

	{"id": "r3", "action": "lookup", "w": "Prague"}
	{"id": "r3", "ok": true, "f": 1}

	{"id": "r4", "action": "top", "k": 3}
	{"id": "r4", "s": [{"w": "the", "f": 154}, {"w": "a", "f": 122}, {"w": "i", "f": 122}], "c": 3}

	{"id": "r5", "action": "insert", "w": "caesar", "f": 4}
	{"id": "r5", "status": "ok"}

	{"id": "r6", "action": "config", "max_limit": 20}
	{"id": "r6", "status": "ok", "stats": {"maxLimit": 20, "maxPrefix": 60, "hotWords": 2048}}

A "config" request changes the server section and writes it back to the
config file. New limits apply at once; hot_words applies on the next start.

The remaining actions are "list" (all words in alphabetical order), "stats"
and "health". Failures are reported as {"id", "e", "c"} with an HTTP-like
status code; the server keeps serving after them.

The "t" field is the time spent answering, in microseconds.
*/
package server

// Request is the union of every request shape. Fields not used by an action
// are ignored.
type Request struct {
	ID        string `msgpack:"id"`
	Action    string `msgpack:"action"`
	Prefix    string `msgpack:"p,omitempty"`
	Limit     int    `msgpack:"l,omitempty"`
	Word      string `msgpack:"w,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`
	K         *int   `msgpack:"k,omitempty"`

	MaxLimit  *int `msgpack:"max_limit,omitempty"`
	MaxPrefix *int `msgpack:"max_prefix,omitempty"`
	HotWords  *int `msgpack:"hot_words,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Frequency int    `msgpack:"f"`
}

// CompletionResponse answers "complete" and "top".
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// AutocompleteResponse answers "autocomplete".
type AutocompleteResponse struct {
	ID        string `msgpack:"id"`
	Word      string `msgpack:"w"`
	TimeTaken int64  `msgpack:"t"`
}

// LookupResponse answers "lookup".
type LookupResponse struct {
	ID        string `msgpack:"id"`
	Found     bool   `msgpack:"ok"`
	Frequency int    `msgpack:"f"`
}

// ListResponse answers "list".
type ListResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"words"`
	Count int      `msgpack:"c"`
}

// StatusResponse answers "insert", "config", "stats" and "health".
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
