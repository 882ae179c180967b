// Package cli provides an interactive prompt that converts each line and
// lists completions for its last word. It is meant for trying rule tables.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/phonetype/internal/logger"
	"github.com/bastiangx/phonetype/pkg/phonetic"
	"github.com/bastiangx/phonetype/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	rankStyle   = lipgloss.NewStyle().Faint(true)
)

// InputHandler reads lines and prints their conversions and suggestions.
type InputHandler struct {
	engine          *phonetic.Engine
	suggester       suggest.Suggester
	suggestLimit    int
	showSuggestions bool
	logger          *log.Logger
}

// NewInputHandler creates a handler. A limit of zero or showSuggestions false
// turns suggestions off.
func NewInputHandler(engine *phonetic.Engine, suggester suggest.Suggester, limit int, showSuggestions bool) *InputHandler {
	return &InputHandler{
		engine:          engine,
		suggester:       suggester,
		suggestLimit:    limit,
		showSuggestions: showSuggestions && limit > 0,
		logger:          logger.New("cli"),
	}
}

// Start runs the prompt on stdin/stdout.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin, os.Stdout)
}

// Run reads lines from r until it ends, writing results to w.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	fmt.Fprintln(w, titleStyle.Render("phonetype CLI"))
	fmt.Fprintln(w, "type something and press Enter to convert it (Ctrl+D to exit):")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(w, line)
	}
}

func (h *InputHandler) handleInput(w io.Writer, line string) {
	start := time.Now()
	out := h.engine.Convert(line)
	h.logger.Debugf("Took [ %v ] to convert %q", time.Since(start), line)

	fmt.Fprintln(w, outputStyle.Render(out))
	if !h.showSuggestions {
		return
	}

	start = time.Now()
	suggestions := h.suggester.Suggest(line, h.suggestLimit)
	h.logger.Debugf("Took [ %v ] for %d suggestions", time.Since(start), len(suggestions))

	for i, s := range suggestions {
		fmt.Fprintf(w, "%s %s\n", rankStyle.Render(fmt.Sprintf("%2d.", i+1)), s)
	}
}
