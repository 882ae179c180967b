package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/phonetype/internal/logger"
	"github.com/bastiangx/phonetype/internal/utils"
	"github.com/bastiangx/phonetype/pkg/config"
	"github.com/bastiangx/phonetype/pkg/phonetic"
	"github.com/bastiangx/phonetype/pkg/script"
	"github.com/bastiangx/phonetype/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrInputTooLong is reported for texts longer than server.max_input.
var ErrInputTooLong = errors.New("input too long")

const (
	codeBadRequest = 400
	codeTooLarge   = 413
	codeInternal   = 500
)

// Server handles the IPC for conversions and suggestions
type Server struct {
	engine    *phonetic.Engine
	suggester suggest.Suggester
	config    *config.Config
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	encoder   *msgpack.Encoder
	logger    *log.Logger
	requests  int
}

// NewServer creates a server speaking over stdin/stdout
func NewServer(engine *phonetic.Engine, suggester suggest.Suggester, cfg *config.Config) *Server {
	return New(engine, suggester, cfg, os.Stdin, os.Stdout)
}

// New creates a server over arbitrary streams. A nil cfg uses the defaults.
func New(engine *phonetic.Engine, suggester suggest.Suggester, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		engine:    engine,
		suggester: suggester,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		logger:    logger.New("server"),
	}
}

// Start announces readiness and serves requests until the input ends. A clean
// end of input returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping", "requests", s.requests)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Warnf("Malformed request: %v", err)
			if err := s.sendError("", "malformed request", codeBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action; only write failures are returned.
func (s *Server) handleRequest(req Request) error {
	if len(req.Text) > s.config.Server.MaxInput {
		s.logger.Debug("Rejecting oversized input", "id", req.ID, "bytes", len(req.Text))
		msg := fmt.Sprintf("%v: %d bytes exceeds %d", ErrInputTooLong, len(req.Text), s.config.Server.MaxInput)
		return s.sendError(req.ID, msg, codeTooLarge)
	}

	switch req.Action {
	case "convert":
		return s.handleConvert(req)
	case "suggest":
		return s.handleSuggest(req)
	case "backspace":
		return s.handleBackspace(req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), codeBadRequest)
	}
}

func (s *Server) handleConvert(req Request) error {
	start := time.Now()
	out := s.engine.Convert(req.Text)
	elapsed := time.Since(start)

	s.logger.Debugf("convert %q took %v", utils.Truncate(req.Text, 40), elapsed)
	return s.send(ConvertResponse{
		ID:        req.ID,
		Output:    out,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleBackspace(req Request) error {
	cursor := utf8.RuneCountInString(req.Text)
	if req.Cursor != nil {
		cursor = *req.Cursor
	}
	out, pos := script.Backspace(req.Text, cursor)
	s.logger.Debug("backspace", "id", req.ID, "cursor", cursor, "new", pos)
	return s.send(BackspaceResponse{ID: req.ID, Output: out, Cursor: pos})
}

func (s *Server) handleSuggest(req Request) error {
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Suggest.DefaultLimit
	}
	limit = min(limit, s.config.Server.MaxLimit)

	start := time.Now()
	words := s.suggester.Suggest(req.Text, limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Word: w, Rank: ranks[i]}
	}

	s.logger.Debugf("suggest %q returned %d in %v", utils.Truncate(req.Text, 40), len(words), elapsed)
	return s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// send encodes one response and flushes it
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return s.sendError("", "internal server error", codeInternal)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	if err := s.encoder.Encode(ErrorResponse{ID: id, Error: message, Code: code}); err != nil {
		return fmt.Errorf("encoding error response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
