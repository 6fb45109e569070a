// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package props

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrPromptAborted is returned when the user aborts a prompt or input ends.
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter asks one question and returns the raw answer.
type Prompter interface {
	Prompt(question, def string) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(question, def string) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(question, def string) (string, error) {
	return f(question, def)
}

// DefaultPrompter uses a line editor when in is the terminal and a plain line reader otherwise.
func DefaultPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && f == os.Stdin && term.IsTerminal(int(f.Fd())) && liner.TerminalSupported() {
		return linerPrompter{}
	}

	return &ReaderPrompter{r: bufio.NewReader(in), w: out}
}

type linerPrompter struct{}

func (linerPrompter) Prompt(question, def string) (string, error) {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	ans, err := line.PromptWithSuggestion(label(question, def), "", -1)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", ErrPromptAborted
	}

	return ans, err
}

// ReaderPrompter reads answers line by line from a reader.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewReaderPrompter creates a ReaderPrompter. out may be nil.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: bufio.NewReader(in), w: out}
}

// Prompt implements Prompter.
func (rp *ReaderPrompter) Prompt(question, def string) (string, error) {
	if rp.w != nil {
		_, _ = fmt.Fprint(rp.w, label(question, def))
	}

	ans, err := rp.r.ReadString('\n')
	if err != nil && (ans == "" || !errors.Is(err, io.EOF)) {
		return "", ErrPromptAborted
	}

	return strings.TrimRight(ans, "\r\n"), nil
}

func label(question, def string) string {
	if def == "" {
		return question + " "
	}

	return fmt.Sprintf("%s [%s] ", question, def)
}

// IsYes reports whether an answer means yes.
func IsYes(ans string) bool {
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes", "true", "1":
		return true
	}

	return false
}
