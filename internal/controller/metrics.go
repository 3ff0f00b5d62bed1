package controller

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	games         metric.Int64Counter
	moves         metric.Int64Counter
	invalidInputs metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	games, err := meter.Int64Counter("tictactoe.games",
		metric.WithDescription("Finished games by result."),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, err
	}

	moves, err := meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Marks placed on the board."),
		metric.WithUnit("{move}"),
	)
	if err != nil {
		return nil, err
	}

	invalidInputs, err := meter.Int64Counter("tictactoe.invalid_inputs",
		metric.WithDescription("Rejected operator answers by kind."),
		metric.WithUnit("{answer}"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{games: games, moves: moves, invalidInputs: invalidInputs}, nil
}

func (m *metrics) gameFinished(ctx context.Context, result Result) {
	m.games.Add(ctx, 1, metric.WithAttributes(attribute.String("result", string(result))))
}

func (m *metrics) movePlaced(ctx context.Context) {
	m.moves.Add(ctx, 1)
}

func (m *metrics) inputRejected(ctx context.Context, kind string) {
	m.invalidInputs.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
