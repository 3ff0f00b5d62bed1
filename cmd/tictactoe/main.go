package main

import (
	"context"
	"ctchen222/tictactoe/internal/apperror"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/controller"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/logger"
	"ctchen222/tictactoe/internal/prompt"
	"ctchen222/tictactoe/internal/render"
	"ctchen222/tictactoe/internal/telemetry"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(os.Getenv(config.PathEnv))
	if err != nil {
		return err
	}

	cleanup, err := setupObservability(ctx, conf)
	if err != nil {
		return err
	}
	defer cleanup()

	prompter, out, closePrompter, err := newPrompter(conf)
	if err != nil {
		return err
	}
	defer closePrompter()

	board := game.NewBoard()
	ctrl, err := controller.New(board, render.New(board, out), prompter, controller.Options{
		MaxAttempts: conf.MaxAttempts,
	})
	if err != nil {
		return err
	}

	err = ctrl.Start(ctx)
	if errors.Is(err, apperror.ErrInputClosed) || errors.Is(err, context.Canceled) {
		slog.Info("input closed, exiting")
		return nil
	}
	return err
}

// setupObservability starts logging, then telemetry. The returned cleanup
// stops them in reverse so that telemetry shutdown can still be logged.
func setupObservability(ctx context.Context, conf *config.Config) (func(), error) {
	closeLog, err := logger.Init(logger.Options{Level: conf.LogLevel, File: conf.LogFile})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint:       conf.Telemetry.Endpoint,
		ServiceName:    conf.Telemetry.ServiceName,
		ServiceVersion: conf.Telemetry.ServiceVersion,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to initialize telemetry: %w", err), closeLog())
	}

	return func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		} else {
			slog.Info("telemetry stopped")
		}
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "tictactoe: failed to close log: %v\n", err)
		}
	}, nil
}

// newPrompter uses readline on a terminal and plain line reading otherwise.
func newPrompter(conf *config.Config) (prompt.Prompter, io.Writer, func() error, error) {
	if !prompt.IsTerminal() {
		return prompt.NewStream(os.Stdin, os.Stdout), os.Stdout, func() error { return nil }, nil
	}

	console, err := prompt.NewConsole(prompt.ConsoleOptions{HistoryFile: conf.HistoryFile})
	if err != nil {
		return nil, nil, nil, err
	}
	return console, console.Stdout(), console.Close, nil
}
