/*
Package server implements msgpack IPC for conversion and suggestion services.

The server reads msgpack maps from stdin and writes one msgpack map per request
to stdout. Requests are handled synchronously, in arrival order, and replies
carry timing info in microseconds.

# IPC

On start the server announces itself:

	{"status": "ready"}

Every request names an action:

	{"id": "req_001", "a": "convert", "t": "amar sOnar bangla"}

	{"id": "req_001", "o": "আমার সোনার বাংলা", "t": 38}

Suggestions complete the last word of the text; ranks start at 1:

	{"id": "req_002", "a": "suggest", "t": "ami ban", "l": 3}

	{"id": "req_002", "s": [{"w": "আমি বাংলা", "r": 1}, {"w": "আমি বানান", "r": 2}], "c": 2, "t": 120}

Backspace deletes before a rune cursor, taking a virama along with its
consonant. Without "p" the cursor sits at the end of the text:

	{"id": "req_005", "a": "backspace", "t": "ক্ষ", "p": 3}

	{"id": "req_005", "o": "ক", "p": 1}

A limit of zero selects the configured default; larger limits are clamped to
server.max_limit.

	{"id": "req_003", "a": "health"}

	{"id": "req_003", "status": "ok"}

Failures are reported in place of the reply:

	{"id": "req_004", "e": "unknown action: \"reverse\"", "c": 400}

Texts longer than server.max_input bytes are rejected with code 413. A message
that is valid msgpack but not a request map gets a 400 and the stream
continues; bytes that are not msgpack at all end the server.
*/
package server

// Request is the single request shape; Action selects the operation.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`
	Text   string `msgpack:"t"`
	Limit  int    `msgpack:"l,omitempty"`
	Cursor *int   `msgpack:"p,omitempty"`
}

// ConvertResponse carries a converted text
type ConvertResponse struct {
	ID        string `msgpack:"id"`
	Output    string `msgpack:"o"`
	TimeTaken int64  `msgpack:"t"`
}

// BackspaceResponse carries the edited text and the new cursor
type BackspaceResponse struct {
	ID     string `msgpack:"id"`
	Output string `msgpack:"o"`
	Cursor int    `msgpack:"p"`
}

// Suggestion - minimal suggestion response
type Suggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// SuggestResponse - suggestion response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
