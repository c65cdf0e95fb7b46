// Command digest sends stdin to the configured assistant once and prints its answer.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"newsdigest/internal/analysis"
	"newsdigest/internal/app"
)

func main() {
	deps, err := app.BuildDigest()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, deps.Runner); err != nil {
		deps.Log.Error("digest failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, assistant analysis.Answerer) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	answer, err := assistant.Run(ctx, string(content))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, analysis.CleanAnswer(answer))
	return err
}
