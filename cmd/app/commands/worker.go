package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	outboxUseCase "github.com/allisson/articles/internal/outbox/usecase"
)

// RunWorker runs the outbox processor alone until ctx is cancelled.
func RunWorker(ctx context.Context, processor outboxUseCase.UseCase, logger *slog.Logger) error {
	logger.Info("starting outbox worker")

	if err := processor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker error: %w", err)
	}

	logger.Info("outbox worker stopped")
	return nil
}
