package fetcher

import (
	"context"
	"time"

	"battlecards/internal/config"
	"battlecards/internal/logger"
)

// Dispatcher передаёт источник на обработку: сразу (Ingester) или через очередь.
type Dispatcher interface {
	Dispatch(ctx context.Context, src config.Source) error
}

// StartPolling запускает цикл опроса сразу и затем с интервалом interval, пока жив ctx.
func StartPolling(ctx context.Context, d Dispatcher, sources []config.Source, interval time.Duration) {
	log := logger.Log.WithFields(logger.Fields{
		"service":  "poller",
		"interval": interval.String(),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	RunCycle(ctx, d, sources)
	for {
		select {
		case <-ticker.C:
			log.Info("Starting new polling cycle")
			RunCycle(ctx, d, sources)

		case <-ctx.Done():
			log.Info("Stopping poller by context")
			return
		}
	}
}

// RunCycle передаёт все источники диспетчеру по очереди. Ошибка одного
// источника не останавливает остальные.
func RunCycle(ctx context.Context, d Dispatcher, sources []config.Source) {
	for _, src := range sources {
		if ctx.Err() != nil {
			return
		}
		if err := d.Dispatch(ctx, src); err != nil {
			logger.Log.WithField("source", src.Name).Warnf("Dispatch failed: %v", err)
		}
	}
}
