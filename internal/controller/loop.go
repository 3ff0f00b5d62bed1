package controller

import (
	"context"
	"ctchen222/tictactoe/internal/apperror"
	"ctchen222/tictactoe/internal/player"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is how a game ended.
type Result string

const (
	ResultWin Result = "win"
	ResultTie Result = "tie"
)

// Outcome describes a finished game. Winner is nil on a tie.
type Outcome struct {
	Result Result
	Winner *player.Player
	Moves  int
}

// GameLoop plays one game on the current board until a player completes a
// line or the board is full.
func (c *Controller) GameLoop(ctx context.Context) (Outcome, error) {
	if !c.hasPlayers() {
		return Outcome{}, apperror.ErrNoPlayers
	}

	c.gameID = uuid.New().String()
	ctx, span := c.tracer.Start(ctx, "controller.GameLoop", trace.WithAttributes(
		attribute.String("game.id", c.gameID),
	))
	defer span.End()

	log := c.log.With("game.id", c.gameID)
	log.InfoContext(ctx, "game started")

	for !c.board.IsFull() {
		current := c.CurrentPlayer()

		if err := c.renderer.Render(); err != nil {
			return Outcome{}, fail(span, err)
		}
		if err := c.takeTurn(ctx, current); err != nil {
			return Outcome{}, fail(span, err)
		}
		if err := c.renderer.Render(); err != nil {
			return Outcome{}, fail(span, err)
		}

		if c.CheckWinner(current) {
			winner := c.playerWithMark(c.board.Winner())
			c.prompter.Show(ctx, fmt.Sprintf(winMessage, winner.Name()))
			outcome := Outcome{Result: ResultWin, Winner: winner, Moves: c.board.FilledCellCount()}
			c.finish(ctx, span, outcome)
			return outcome, nil
		}
	}

	c.prompter.Show(ctx, tieMessage)
	outcome := Outcome{Result: ResultTie, Moves: c.board.FilledCellCount()}
	c.finish(ctx, span, outcome)
	return outcome, nil
}

func (c *Controller) finish(ctx context.Context, span trace.Span, outcome Outcome) {
	attrs := []any{"game.id", c.gameID, "result", outcome.Result, "moves", outcome.Moves}
	span.SetAttributes(attribute.String("game.result", string(outcome.Result)))
	if outcome.Winner != nil {
		attrs = append(attrs, "winner", outcome.Winner.Name())
		span.SetAttributes(attribute.String("game.winner", outcome.Winner.Name()))
	}

	c.metrics.gameFinished(ctx, outcome.Result)
	c.log.InfoContext(ctx, "game finished", attrs...)
}

// takeTurn asks p for a cell until a mark is placed. Invalid answers get a
// notice and another prompt, up to maxAttempts.
func (c *Controller) takeTurn(ctx context.Context, p *player.Player) error {
	ctx, span := c.tracer.Start(ctx, "controller.takeTurn", trace.WithAttributes(
		attribute.String("player.name", p.Name()),
		attribute.String("player.mark", string(p.Mark())),
	))
	defer span.End()

	question := fmt.Sprintf(turnQuestion, p.Name(), p.Mark())
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		cell, err := c.prompter.AskNumber(ctx, question)
		if err == nil {
			err = c.board.Place(cell, p.Mark())
		}

		switch {
		case err == nil:
			span.SetAttributes(attribute.Int("move.cell", cell))
			c.metrics.movePlaced(ctx)
			c.log.DebugContext(ctx, "mark placed", "game.id", c.gameID, "player", p.String(), "cell", cell)
			return nil
		case errors.Is(err, apperror.ErrInvalidNumericInput),
			errors.Is(err, apperror.ErrOutOfRange),
			errors.Is(err, apperror.ErrCellOccupied):
			kind := inputKind(err)
			c.metrics.inputRejected(ctx, kind)
			c.log.DebugContext(ctx, "move rejected", "game.id", c.gameID, "player", p.String(), "attempt", attempt, "kind", kind)
			c.prompter.Show(ctx, notice(err, cell))
		default:
			return fail(span, err)
		}
	}

	return fail(span, fmt.Errorf("%w: turn of %s", apperror.ErrTooManyAttempts, p.Name()))
}
