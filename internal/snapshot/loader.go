package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"battlecards/internal/logger"
	"battlecards/internal/metrics"
	"battlecards/internal/models"
)

const (
	httpTimeout = 10 * time.Second
	maxRetries  = 3
	retryDelay  = 2 * time.Second
	maxDocSize  = 32 << 20
)

// Loader читает документ снимка из файла Path или по адресу URL (URL важнее).
// При любой ошибке возвращается пустая коллекция, а в режиме Dev результат Seed().
type Loader struct {
	Path       string
	URL        string
	Dev        bool
	Client     *http.Client
	Metrics    *metrics.Metrics
	RetryDelay time.Duration
}

// Load загружает и валидирует снимок. Невалидные записи логируются и отбрасываются.
func (l *Loader) Load(ctx context.Context) []models.Insight {
	log := logger.Component("snapshot")

	data, err := l.read(ctx)
	if err != nil {
		log.WithError(err).Warn("Snapshot unavailable, using fallback")
		l.countFetchError()
		return l.fallback()
	}

	insights, rejected := models.ParseSnapshot(data)
	for _, rerr := range rejected {
		log.WithError(rerr).Warn("Rejected snapshot record")
		if l.Metrics != nil {
			l.Metrics.InsightsRejected.WithLabelValues(RejectReason(rerr)).Inc()
		}
	}
	if len(rejected) == 1 && errors.Is(rejected[0], models.ErrNotArray) {
		return l.fallback()
	}

	log.WithField("insights", len(insights)).Info("Snapshot loaded")
	return insights
}

func (l *Loader) fallback() []models.Insight {
	if l.Dev {
		return Seed()
	}
	return []models.Insight{}
}

func (l *Loader) countFetchError() {
	if l.Metrics != nil {
		l.Metrics.FetchErrors.WithLabelValues("snapshot").Inc()
	}
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	switch {
	case l.URL != "":
		return l.fetch(ctx)
	case l.Path != "":
		return os.ReadFile(l.Path)
	default:
		return nil, errors.New("no snapshot source configured")
	}
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}
	delay := l.RetryDelay
	if delay == 0 {
		delay = retryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		data, err := l.fetchOnce(ctx, client)
		if err == nil {
			return data, nil
		}
		lastErr = err
		logger.Component("snapshot").WithError(err).WithFields(logger.Fields{
			"url":     l.URL,
			"attempt": attempt,
		}).Warn("Snapshot fetch failed")

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("fetch snapshot after %d attempts: %w", maxRetries, lastErr)
}

func (l *Loader) fetchOnce(ctx context.Context, client *http.Client) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocSize))
}

// RejectReason переводит ошибку валидации в метку метрики.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, models.ErrMissingField):
		return "missing_field"
	case errors.Is(err, models.ErrNotArray):
		return "not_array"
	default:
		return "malformed"
	}
}

// WriteFile сохраняет снимок JSON-массивом. Файл подменяется через rename,
// поэтому читатели не видят недописанный документ.
func WriteFile(path string, items []models.Insight) error {
	if items == nil {
		items = []models.Insight{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".insights-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// FileSink сохраняет каждый новый снимок в файл Path.
type FileSink struct {
	Path string
}

// SaveSnapshot записывает снимок через WriteFile.
func (s FileSink) SaveSnapshot(_ context.Context, items []models.Insight) error {
	return WriteFile(s.Path, items)
}
