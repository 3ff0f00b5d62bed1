package controller

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/prompt"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxAttempts = 10

// BoardRenderer displays the board.
type BoardRenderer interface {
	Render() error
}

// Options tunes a Controller. Zero values select defaults.
type Options struct {
	MaxAttempts int // invalid answers tolerated per question before giving up
	Logger      *slog.Logger
	Tracer      trace.Tracer
	Meter       metric.Meter
}

// Controller runs game sessions on a single board: player setup, alternating
// turns, win and tie detection, and the restart flow.
type Controller struct {
	board    *game.Board
	renderer BoardRenderer
	prompter prompt.Prompter

	// players[0] plays X, players[1] plays O. Both nil until setup.
	players [2]*player.Player
	gameID  string

	maxAttempts int
	log         *slog.Logger
	tracer      trace.Tracer
	metrics     *metrics
}

func New(board *game.Board, renderer BoardRenderer, prompter prompt.Prompter, opts Options) (*Controller, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("controller")
	}
	if opts.Meter == nil {
		opts.Meter = otel.Meter("controller")
	}

	m, err := newMetrics(opts.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller metrics: %w", err)
	}

	return &Controller{
		board:       board,
		renderer:    renderer,
		prompter:    prompter,
		maxAttempts: opts.MaxAttempts,
		log:         opts.Logger.With("component", "controller"),
		tracer:      opts.Tracer,
		metrics:     m,
	}, nil
}

// Start runs games until the operator declines to play again. Players are set
// up first if there are none.
func (c *Controller) Start(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "controller.Start")
	defer span.End()

	for {
		if !c.hasPlayers() {
			if err := c.SetupPlayers(ctx); err != nil {
				return fail(span, err)
			}
		}

		if _, err := c.GameLoop(ctx); err != nil {
			return fail(span, err)
		}

		again, err := c.prompter.Confirm(ctx, playAgainQuestion)
		if err != nil {
			return fail(span, err)
		}
		if !again {
			c.prompter.Show(ctx, exitMessage)
			return nil
		}

		if err := c.Restart(ctx); err != nil {
			return fail(span, err)
		}
	}
}

// Restart prepares the next game: players are optionally cleared so that
// Start sets them up again, and the board is emptied.
func (c *Controller) Restart(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "controller.Restart")
	defer span.End()

	rename, err := c.prompter.Confirm(ctx, renameQuestion)
	if err != nil {
		return fail(span, err)
	}
	if rename {
		c.players = [2]*player.Player{}
	}

	c.board.Reset()
	c.log.InfoContext(ctx, "game restarted", "rename", rename)
	return nil
}

// CheckWinner reports whether p's mark completes any winning line.
func (c *Controller) CheckWinner(p *player.Player) bool {
	return c.board.HasLine(p.Mark())
}

// CurrentPlayer is derived from the filled-cell parity: X moves on even counts,
// O on odd ones. It is nil before setup.
func (c *Controller) CurrentPlayer() *player.Player {
	if c.board.FilledCellCount()%2 == 0 {
		return c.playerWithMark(game.PlayerX)
	}
	return c.playerWithMark(game.PlayerO)
}

// Players returns the X and O players, nil before setup.
func (c *Controller) Players() (x, o *player.Player) {
	return c.players[0], c.players[1]
}

func (c *Controller) playerWithMark(mark game.PlayerMark) *player.Player {
	for _, p := range c.players {
		if p != nil && p.Mark() == mark {
			return p
		}
	}
	return nil
}

func (c *Controller) hasPlayers() bool {
	return c.players[0] != nil && c.players[1] != nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
