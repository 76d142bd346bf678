package worker

import (
	"context"
	"time"

	"battlecards/internal/config"
	"battlecards/internal/logger"
	"battlecards/internal/queue"
)

const taskTimeout = time.Minute

// Ingester обрабатывает один источник.
type Ingester interface {
	Ingest(ctx context.Context, src config.Source) (int, error)
}

type Worker struct {
	ingester Ingester
}

func NewWorker(ingester Ingester) *Worker {
	return &Worker{ingester: ingester}
}

// HandleTask разбирает задание из очереди и запускает приём источника.
func (w *Worker) HandleTask(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	src, err := queue.DecodeSource(body)
	if err != nil {
		// нечитаемое задание подтверждается, а не возвращается в очередь
		logger.Log.Errorf("Bad task: %v", err)
		return nil
	}

	log := logger.Log.WithFields(logger.Fields{"source": src.Name, "url": src.URL})
	log.Info("Processing source")

	added, err := w.ingester.Ingest(ctx, src)
	if err != nil {
		// повтором служит следующий цикл опроса, задание в очередь не возвращается
		log.Errorf("Ingest failed: %v", err)
		return nil
	}

	log.Infof("Added %d insights", added)
	return nil
}
