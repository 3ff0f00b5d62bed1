package controller

import (
	"context"
	"ctchen222/tictactoe/internal/apperror"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/validator"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// SetupPlayers asks for two distinct, non-empty names and creates player 1
// with mark X and player 2 with mark O.
func (c *Controller) SetupPlayers(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "controller.SetupPlayers")
	defer span.End()

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		first, err := c.prompter.AskText(ctx, firstNameQuestion)
		if err != nil {
			return fail(span, err)
		}
		second, err := c.prompter.AskText(ctx, secondNameQuestion)
		if err != nil {
			return fail(span, err)
		}

		names := player.Names{First: strings.TrimSpace(first), Second: strings.TrimSpace(second)}
		if err := validateNames(names); err != nil {
			kind := inputKind(err)
			c.metrics.inputRejected(ctx, kind)
			c.log.WarnContext(ctx, "player names rejected", "attempt", attempt, "kind", kind)
			c.prompter.Show(ctx, notice(err, 0))
			continue
		}

		c.players = [2]*player.Player{
			player.NewPlayer(names.First, game.PlayerX),
			player.NewPlayer(names.Second, game.PlayerO),
		}
		span.SetAttributes(
			attribute.String("player.x", names.First),
			attribute.String("player.o", names.Second),
		)
		c.log.InfoContext(ctx, "players ready", "player.x", names.First, "player.o", names.Second)
		return nil
	}

	return fail(span, fmt.Errorf("%w: player setup", apperror.ErrTooManyAttempts))
}

func validateNames(names player.Names) error {
	err := validator.GetValidator().Struct(names)
	if err == nil {
		return nil
	}

	if slices.Contains(validator.FailedTags(err), "Second.nefield") {
		return fmt.Errorf("%w: %q", apperror.ErrDuplicateName, names.First)
	}
	return apperror.ErrEmptyName
}
