package repl

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// LineReader reads one line of user input per call. It returns io.EOF when
// the input is exhausted.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// LinerReader is a LineReader with line editing and persistent history.
type LinerReader struct {
	line        *liner.State
	historyFile string
}

// NewLinerReader creates a terminal reader. An empty historyFile disables
// history persistence.
func NewLinerReader(historyFile string) *LinerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &LinerReader{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}
	return r
}

// Prompt implements LineReader. Ctrl+C is reported as io.EOF.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (r *LinerReader) Close() error {
	if r.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o700); err == nil {
			if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				_, _ = r.line.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return r.line.Close()
}
