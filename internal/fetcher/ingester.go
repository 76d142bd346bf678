package fetcher

import (
	"context"
	"errors"
	"sync"

	"battlecards/internal/config"
	"battlecards/internal/logger"
	"battlecards/internal/metrics"
	"battlecards/internal/models"
	"battlecards/internal/snapshot"
)

// Sink принимает каждый новый снимок целиком (файл, БД).
type Sink interface {
	SaveSnapshot(ctx context.Context, items []models.Insight) error
}

// FetchFunc загружает RSS-ленту. Подменяется в тестах.
type FetchFunc func(ctx context.Context, url string) (*models.RSS, error)

// Ingester опрашивает источник, нормализует элементы, сливает их с текущим
// снимком и публикует результат целиком.
type Ingester struct {
	mu          sync.Mutex
	holder      *snapshot.Holder
	competitors []config.Competitor
	max         int
	sinks       []Sink
	metrics     *metrics.Metrics
	fetch       FetchFunc
}

// NewIngester создаёт Ingester поверх holder. fetch == nil означает FetchRSS.
func NewIngester(holder *snapshot.Holder, cfg *config.Config, m *metrics.Metrics, fetch FetchFunc, sinks ...Sink) *Ingester {
	if fetch == nil {
		fetch = FetchRSS
	}
	return &Ingester{
		holder:      holder,
		competitors: cfg.Competitors,
		max:         cfg.MaxInsights,
		sinks:       sinks,
		metrics:     m,
		fetch:       fetch,
	}
}

// Dispatch реализует Dispatcher: источник обрабатывается в текущем процессе.
func (ing *Ingester) Dispatch(ctx context.Context, src config.Source) error {
	_, err := ing.Ingest(ctx, src)
	return err
}

// Ingest выполняет один цикл для источника и возвращает число новых записей.
func (ing *Ingester) Ingest(ctx context.Context, src config.Source) (int, error) {
	log := logger.Component("ingester").WithFields(logger.Fields{
		"source": src.Name,
		"url":    src.URL,
	})

	log.Debug("Fetching RSS feed")
	rss, err := ing.fetch(ctx, src.URL)
	if err != nil {
		log.Errorf("Failed to fetch RSS: %v", err)
		if ing.metrics != nil {
			ing.metrics.FetchErrors.WithLabelValues(src.Name).Inc()
		}
		return 0, err
	}

	fresh := make([]models.Insight, 0, len(rss.Channel.Items))
	for _, item := range rss.Channel.Items {
		in, err := Normalize(src, item, ing.competitors)
		if err != nil {
			log.WithField("title", item.Title).Warnf("Skipping item: %v", err)
			ing.countRejected(err)
			continue
		}
		fresh = append(fresh, in)
	}

	return ing.publish(ctx, log, src, fresh)
}

func (ing *Ingester) publish(ctx context.Context, log *logger.Entry, src config.Source, fresh []models.Insight) (int, error) {
	ing.mu.Lock()
	defer ing.mu.Unlock()

	merged, added := Merge(ing.holder.Load(), fresh, ing.max)
	ing.holder.Store(merged)

	if ing.metrics != nil {
		ing.metrics.InsightsIngested.WithLabelValues(src.Name).Add(float64(added))
		ing.metrics.SnapshotSize.Set(float64(len(merged)))
	}
	log.WithFields(logger.Fields{"items_count": len(fresh), "added": added}).Info("Processed RSS feed")

	if added == 0 {
		return 0, nil
	}

	var errs []error
	for _, s := range ing.sinks {
		if err := s.SaveSnapshot(ctx, merged); err != nil {
			log.Errorf("Failed to save snapshot: %v", err)
			errs = append(errs, err)
		}
	}
	return added, errors.Join(errs...)
}

func (ing *Ingester) countRejected(err error) {
	if ing.metrics == nil {
		return
	}
	reason := "malformed"
	switch {
	case errors.Is(err, ErrNoDate):
		reason = "invalid_date"
	case errors.Is(err, models.ErrMissingField):
		reason = "missing_field"
	}
	ing.metrics.InsightsRejected.WithLabelValues(reason).Inc()
}
