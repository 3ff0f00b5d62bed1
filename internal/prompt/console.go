package prompt

import (
	"ctchen222/tictactoe/internal/apperror"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// ConsoleOptions configures the interactive terminal.
type ConsoleOptions struct {
	HistoryFile string
}

// Console is an interactive Prompter backed by readline.
type Console struct {
	asker
	l *readline.Instance
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewConsole(opts ConsoleOptions) (*Console, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     opts.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}

	c := &Console{l: l}
	c.asker = asker{ask: c.setPrompt, read: c.readLine, out: l.Stdout()}
	return c, nil
}

func (c *Console) setPrompt(question string) error {
	c.l.SetPrompt(question + " ")
	return nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.l.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", apperror.ErrInputClosed
	}
	if err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return line, nil
}

// Stdout is the terminal writer that does not clobber the prompt line.
func (c *Console) Stdout() io.Writer {
	return c.l.Stdout()
}

func (c *Console) Close() error {
	return c.l.Close()
}

// IsTerminal reports whether stdin and stdout are attached to a terminal.
func IsTerminal() bool {
	return readline.DefaultIsTerminal()
}
