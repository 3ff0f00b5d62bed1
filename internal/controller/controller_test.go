package controller

import (
	"bytes"
	"context"
	"ctchen222/tictactoe/internal/apperror"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/prompt"
	"ctchen222/tictactoe/internal/render"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// script joins operator answers into newline-terminated input.
func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// newScriptedController wires a real board, renderer and stream prompter.
// Prompts, notices and renderings all go to the returned buffer.
func newScriptedController(t *testing.T, input string, opts Options) (*Controller, *game.Board, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	board := game.NewBoard()
	if opts.Logger == nil {
		opts.Logger = quietLogger
	}

	c, err := New(board, render.New(board, &out), prompt.NewStream(strings.NewReader(input), &out), opts)
	require.NoError(t, err)
	return c, board, &out
}

func counterValues(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	values := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				key := ""
				for _, kv := range dp.Attributes.ToSlice() {
					key += string(kv.Key) + "=" + kv.Value.Emit()
				}
				values[key] += dp.Value
			}
		}
	}
	return values
}

func TestController_WinByRow(t *testing.T) {
	// Given: X plays 1, 2, 3 while O plays 4, 5
	c, board, out := newScriptedController(t, script("alice", "bob", "1", "4", "2", "5", "3"), Options{})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	// When: the game is played
	outcome, err := c.GameLoop(ctx)

	// Then: X wins on the fifth move with the top row
	require.NoError(t, err)
	assert.Equal(t, ResultWin, outcome.Result)
	require.NotNil(t, outcome.Winner)
	assert.Equal(t, "alice", outcome.Winner.Name())
	assert.Equal(t, game.PlayerX, outcome.Winner.Mark())
	assert.Equal(t, 5, outcome.Moves)
	assert.Equal(t, 5, board.FilledCellCount())
	assert.True(t, board.HasLine(game.PlayerX))
	assert.Contains(t, out.String(), " X | X | X \n")
	assert.Contains(t, out.String(), "alice won!")
	assert.NotContains(t, out.String(), "tie!")
}

func TestController_WinByDiagonal(t *testing.T) {
	// Given: X plays 1, 5, 9 while O plays 2, 3
	c, board, out := newScriptedController(t, script("alice", "bob", "1", "2", "5", "3", "9"), Options{})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	// When: the game is played
	outcome, err := c.GameLoop(ctx)

	// Then: X wins with the main diagonal
	require.NoError(t, err)
	assert.Equal(t, ResultWin, outcome.Result)
	assert.Equal(t, "alice", outcome.Winner.Name())
	assert.Equal(t, game.PlayerX, board.Cell(0, 0))
	assert.Equal(t, game.PlayerX, board.Cell(1, 1))
	assert.Equal(t, game.PlayerX, board.Cell(2, 2))
	assert.Contains(t, out.String(), "alice won!")
}

func TestController_OWins(t *testing.T) {
	// Given: O completes the middle column before X completes anything
	c, _, out := newScriptedController(t, script("alice", "bob", "1", "2", "3", "5", "4", "8"), Options{})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	outcome, err := c.GameLoop(ctx)

	require.NoError(t, err)
	assert.Equal(t, ResultWin, outcome.Result)
	assert.Equal(t, "bob", outcome.Winner.Name())
	assert.Equal(t, 6, outcome.Moves)
	assert.Contains(t, out.String(), "bob won!")
}

func TestController_Tie(t *testing.T) {
	// Given: X takes 1, 2, 6, 7, 8 and O takes 3, 4, 5, 9 in alternation
	c, board, out := newScriptedController(t, script("alice", "bob", "1", "3", "2", "4", "6", "5", "7", "9", "8"), Options{})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	// When: the game is played
	outcome, err := c.GameLoop(ctx)

	// Then: the game ends in a tie exactly when the board is full
	require.NoError(t, err)
	assert.Equal(t, ResultTie, outcome.Result)
	assert.Nil(t, outcome.Winner)
	assert.Equal(t, 9, outcome.Moves)
	assert.True(t, board.IsFull())
	assert.Contains(t, out.String(), "tie!")
	assert.NotContains(t, out.String(), "won!")
}

func TestController_TurnAlternation(t *testing.T) {
	c, board, _ := newScriptedController(t, script("alice", "bob"), Options{})
	require.NoError(t, c.SetupPlayers(context.Background()))

	// Fill the board in an order that never completes a line and check the
	// mover before every placement.
	order := []int{1, 3, 2, 4, 6, 5, 7, 9, 8}
	for k, cell := range order {
		current := c.CurrentPlayer()
		require.NotNil(t, current)
		if k%2 == 0 {
			assert.Equal(t, game.PlayerX, current.Mark(), "placement %d", k)
			assert.Equal(t, "alice", current.Name())
		} else {
			assert.Equal(t, game.PlayerO, current.Mark(), "placement %d", k)
			assert.Equal(t, "bob", current.Name())
		}
		require.True(t, board.SetPlayerPosition(cell, current.Mark()))
		assert.False(t, c.CheckWinner(current))
	}
}

func TestController_InvalidMovesAreReprompted(t *testing.T) {
	// Given: X answers with garbage, out-of-range cells and then a valid cell;
	// O then tries the taken cell before picking a free one
	input := script("alice", "bob",
		"abc", "0", "10", "1",
		"1", "4",
		"2", "5", "3",
	)
	c, board, out := newScriptedController(t, input, Options{})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	outcome, err := c.GameLoop(ctx)

	// Then: each rejection shows its own notice and the game still finishes
	require.NoError(t, err)
	assert.Equal(t, ResultWin, outcome.Result)
	assert.Equal(t, 5, board.FilledCellCount())
	assert.Contains(t, out.String(), "Please enter a number from 1 to 9.")
	assert.Contains(t, out.String(), "There is no cell 0.")
	assert.Contains(t, out.String(), "There is no cell 10.")
	assert.Contains(t, out.String(), "Cell 1 is already taken.")
	// four prompts for the first turn, one each for the next two
	assert.Equal(t, 6, strings.Count(out.String(), "alice's turn (X). Choose a cell (1-9):"))
}

func TestController_TooManyInvalidMoves(t *testing.T) {
	// Given: only two attempts are allowed per question
	c, board, _ := newScriptedController(t, script("alice", "bob", "0", "x"), Options{MaxAttempts: 2})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	// When: X keeps answering with invalid cells
	_, err := c.GameLoop(ctx)

	// Then: the loop gives up without touching the board
	require.ErrorIs(t, err, apperror.ErrTooManyAttempts)
	assert.Equal(t, 0, board.FilledCellCount())
}

func TestController_GameLoopWithoutPlayers(t *testing.T) {
	c, _, _ := newScriptedController(t, "", Options{})

	_, err := c.GameLoop(context.Background())

	require.ErrorIs(t, err, apperror.ErrNoPlayers)
	assert.Nil(t, c.CurrentPlayer())
}

func TestController_SetupPlayers(t *testing.T) {
	t.Run("identical names are rejected and asked again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := prompt.NewMockPrompter(ctrl)
		board := game.NewBoard()
		c, err := New(board, render.New(board, io.Discard), p, Options{Logger: quietLogger})
		require.NoError(t, err)

		gomock.InOrder(
			p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return("alice", nil),
			p.EXPECT().AskText(gomock.Any(), secondNameQuestion).Return("alice", nil),
			p.EXPECT().Show(gomock.Any(), "Player names must be different. Please try again."),
			p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return("alice", nil),
			p.EXPECT().AskText(gomock.Any(), secondNameQuestion).Return("bob", nil),
		)

		require.NoError(t, c.SetupPlayers(context.Background()))

		x, o := c.Players()
		assert.Equal(t, "alice", x.Name())
		assert.Equal(t, game.PlayerX, x.Mark())
		assert.Equal(t, "bob", o.Name())
		assert.Equal(t, game.PlayerO, o.Mark())
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := prompt.NewMockPrompter(ctrl)
		board := game.NewBoard()
		c, err := New(board, render.New(board, io.Discard), p, Options{Logger: quietLogger})
		require.NoError(t, err)

		gomock.InOrder(
			p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return("   ", nil),
			p.EXPECT().AskText(gomock.Any(), secondNameQuestion).Return("bob", nil),
			p.EXPECT().Show(gomock.Any(), "Player names must not be empty. Please try again."),
			p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return(" carol ", nil),
			p.EXPECT().AskText(gomock.Any(), secondNameQuestion).Return("bob", nil),
		)

		require.NoError(t, c.SetupPlayers(context.Background()))

		x, _ := c.Players()
		assert.Equal(t, "carol", x.Name())
	})

	t.Run("retries are bounded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := prompt.NewMockPrompter(ctrl)
		board := game.NewBoard()
		c, err := New(board, render.New(board, io.Discard), p, Options{MaxAttempts: 3, Logger: quietLogger})
		require.NoError(t, err)

		p.EXPECT().AskText(gomock.Any(), gomock.Any()).Return("same", nil).Times(6)
		p.EXPECT().Show(gomock.Any(), gomock.Any()).Times(3)

		err = c.SetupPlayers(context.Background())

		require.ErrorIs(t, err, apperror.ErrTooManyAttempts)
		x, o := c.Players()
		assert.Nil(t, x)
		assert.Nil(t, o)
	})

	t.Run("closed input stops setup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := prompt.NewMockPrompter(ctrl)
		board := game.NewBoard()
		c, err := New(board, render.New(board, io.Discard), p, Options{Logger: quietLogger})
		require.NoError(t, err)

		p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return("", apperror.ErrInputClosed)

		err = c.SetupPlayers(context.Background())

		require.ErrorIs(t, err, apperror.ErrInputClosed)
	})
}

func TestController_Start(t *testing.T) {
	t.Run("single game then exit", func(t *testing.T) {
		c, _, out := newScriptedController(t, script("alice", "bob", "1", "4", "2", "5", "3", "n"), Options{})

		require.NoError(t, c.Start(context.Background()))

		assert.Contains(t, out.String(), "alice won!")
		assert.Contains(t, out.String(), "Play again? [y/N]")
		assert.True(t, strings.HasSuffix(out.String(), "Thanks for playing!\n"))
	})

	t.Run("restart keeps players and clears the board", func(t *testing.T) {
		input := script("alice", "bob",
			"1", "4", "2", "5", "3", // alice wins
			"y", "n", // play again, keep names
			"4", "1", "5", "2", "7", "3", // bob wins on cell 1 reused after reset
			"n",
		)
		c, board, out := newScriptedController(t, input, Options{})

		require.NoError(t, c.Start(context.Background()))

		assert.Contains(t, out.String(), "alice won!")
		assert.Contains(t, out.String(), "bob won!")
		assert.Equal(t, 1, strings.Count(out.String(), firstNameQuestion))
		assert.Equal(t, 6, board.FilledCellCount())
	})

	t.Run("restart with new players", func(t *testing.T) {
		input := script("alice", "bob",
			"1", "4", "2", "5", "3",
			"y", "y", // play again, rename
			"carol", "dave",
			"1", "4", "2", "5", "3",
			"n",
		)
		c, _, out := newScriptedController(t, input, Options{})

		require.NoError(t, c.Start(context.Background()))

		assert.Contains(t, out.String(), "carol won!")
		assert.Equal(t, 2, strings.Count(out.String(), firstNameQuestion))
		x, o := c.Players()
		assert.Equal(t, "carol", x.Name())
		assert.Equal(t, "dave", o.Name())
	})

	t.Run("input ending mid-game is reported", func(t *testing.T) {
		c, _, _ := newScriptedController(t, script("alice", "bob", "1"), Options{})

		err := c.Start(context.Background())

		require.ErrorIs(t, err, apperror.ErrInputClosed)
	})
}

func TestController_Restart(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := prompt.NewMockPrompter(ctrl)
	board := game.NewBoard()
	c, err := New(board, render.New(board, io.Discard), p, Options{Logger: quietLogger})
	require.NoError(t, err)

	p.EXPECT().AskText(gomock.Any(), firstNameQuestion).Return("alice", nil)
	p.EXPECT().AskText(gomock.Any(), secondNameQuestion).Return("bob", nil)
	require.NoError(t, c.SetupPlayers(context.Background()))
	require.True(t, board.SetPlayerPosition(5, game.PlayerX))

	p.EXPECT().Confirm(gomock.Any(), renameQuestion).Return(true, nil)

	require.NoError(t, c.Restart(context.Background()))

	assert.Equal(t, 0, board.FilledCellCount())
	x, o := c.Players()
	assert.Nil(t, x)
	assert.Nil(t, o)
}

func TestController_Metrics(t *testing.T) {
	// Given: a meter backed by a manual reader
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	input := script("alice", "alice", "alice", "bob",
		"1", "4", "2", "5", "3", // win
		"y", "n",
		"1", "3", "2", "4", "6", "5", "7", "9", "9", "8", // tie, with one occupied retry
		"n",
	)
	c, _, _ := newScriptedController(t, input, Options{Meter: meter})

	// When: two games are played
	require.NoError(t, c.Start(context.Background()))

	// Then: finished games, moves and rejections are counted
	games := counterValues(t, reader, "tictactoe.games")
	assert.Equal(t, map[string]int64{"result=win": 1, "result=tie": 1}, games)

	moves := counterValues(t, reader, "tictactoe.moves")
	assert.Equal(t, map[string]int64{"": 14}, moves)

	invalid := counterValues(t, reader, "tictactoe.invalid_inputs")
	assert.Equal(t, map[string]int64{"kind=duplicate_name": 1, "kind=cell_occupied": 1}, invalid)
}

func TestController_Tracer(t *testing.T) {
	// Given: a tracer recording ended spans
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	c, _, _ := newScriptedController(t, script("alice", "bob", "1", "4", "2", "5", "3", "n"), Options{Tracer: tracer})

	// When: one game is played
	require.NoError(t, c.Start(context.Background()))

	// Then: every operation is traced through the given tracer
	names := make(map[string]int)
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}
	assert.Equal(t, 1, names["controller.Start"])
	assert.Equal(t, 1, names["controller.SetupPlayers"])
	assert.Equal(t, 1, names["controller.GameLoop"])
	assert.Equal(t, 5, names["controller.takeTurn"])
}

func TestController_MoveLogsIdentifyPlayer(t *testing.T) {
	// Given: a debug logger
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, _, _ := newScriptedController(t, script("alice", "bob", "1", "1", "4"), Options{Logger: logger})
	ctx := context.Background()
	require.NoError(t, c.SetupPlayers(ctx))

	// When: alice plays, then bob tries her cell before picking another
	require.NoError(t, c.takeTurn(ctx, c.CurrentPlayer()))
	require.NoError(t, c.takeTurn(ctx, c.CurrentPlayer()))

	// Then: moves name the player together with the mark
	assert.Contains(t, logs.String(), `msg="mark placed"`)
	assert.Contains(t, logs.String(), `player="alice (X)" cell=1`)
	assert.Contains(t, logs.String(), `msg="move rejected"`)
	assert.Contains(t, logs.String(), `player="bob (O)" attempt=1 kind=cell_occupied`)
}

func TestInputKind(t *testing.T) {
	assert.Equal(t, "out_of_range", inputKind(apperror.ErrOutOfRange))
	assert.Equal(t, "not_a_number", inputKind(apperror.ErrInvalidNumericInput))
	assert.Equal(t, "unknown", inputKind(apperror.ErrInputClosed))
	assert.Equal(t, "Invalid input. Please try again.", notice(apperror.ErrInputClosed, 0))
}
