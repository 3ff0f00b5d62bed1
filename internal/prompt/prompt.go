// Package prompt is the text boundary between the game and a human operator.
package prompt

//go:generate mockgen -source=prompt.go -destination=mock_prompter.go -package=prompt

import (
	"context"
	"ctchen222/tictactoe/internal/apperror"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Prompter asks the operator questions and shows messages.
type Prompter interface {
	AskText(ctx context.Context, question string) (string, error)
	AskNumber(ctx context.Context, question string) (int, error)
	Confirm(ctx context.Context, question string) (bool, error)
	Show(ctx context.Context, message string)
}

// asker implements Prompter on top of a line source. Adapters embed it.
type asker struct {
	ask  func(question string) error
	read func() (string, error)
	out  io.Writer

	// pending holds a read still in flight after its caller gave up.
	// The next question picks up its answer.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// AskText returns the answer with surrounding whitespace removed. It returns
// ctx.Err() as soon as ctx is done, even while the line source blocks.
func (a *asker) AskText(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := a.ask(question); err != nil {
		return "", err
	}

	if a.pending == nil {
		a.pending = make(chan lineResult, 1)
		go func(results chan<- lineResult) {
			line, err := a.read()
			results <- lineResult{line: line, err: err}
		}(a.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-a.pending:
		a.pending = nil
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

func (a *asker) AskNumber(ctx context.Context, question string) (int, error) {
	text, err := a.AskText(ctx, question)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidNumericInput, text)
	}
	return n, nil
}

// Confirm treats "y" and "yes" in any case as yes and every other answer as no.
func (a *asker) Confirm(ctx context.Context, question string) (bool, error) {
	text, err := a.AskText(ctx, question+" [y/N]")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(text) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (a *asker) Show(ctx context.Context, message string) {
	if _, err := fmt.Fprintln(a.out, message); err != nil {
		slog.WarnContext(ctx, "failed to write message", "error", err)
	}
}
