package main

import (
	"context"

	"battlecards/internal/config"
	"battlecards/internal/curation"
	"battlecards/internal/db"
	"battlecards/internal/fetcher"
	"battlecards/internal/logger"
	"battlecards/internal/metrics"
	"battlecards/internal/models"
	"battlecards/internal/snapshot"
)

// app связывает хранилища, снимок и приём данных по конфигурации.
type app struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	database *db.Database
	holder   *snapshot.Holder
	ingester *fetcher.Ingester
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.NewMetrics()}

	if cfg.DatabaseURL != "" {
		database, err := db.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
	}

	a.holder = snapshot.NewHolder(a.loadSnapshot(ctx))
	a.metrics.SnapshotSize.Set(float64(len(a.holder.Load())))

	var sinks []fetcher.Sink
	if cfg.SnapshotPath != "" {
		sinks = append(sinks, snapshot.FileSink{Path: cfg.SnapshotPath})
	}
	if a.database != nil {
		sinks = append(sinks, a.database)
	}
	a.ingester = fetcher.NewIngester(a.holder, cfg, a.metrics, nil, sinks...)
	return a, nil
}

// loadSnapshot берёт снимок из файла или URL, а если они не заданы, то из базы.
func (a *app) loadSnapshot(ctx context.Context) []models.Insight {
	if a.cfg.SnapshotPath == "" && a.cfg.SnapshotURL == "" && a.database != nil {
		items, err := a.database.LoadSnapshot(ctx, a.cfg.MaxInsights)
		if err == nil {
			return items
		}
		logger.Log.Warnf("Failed to load snapshot from database: %v", err)
		if a.cfg.Dev {
			return snapshot.Seed()
		}
		return []models.Insight{}
	}

	loader := &snapshot.Loader{
		Path:    a.cfg.SnapshotPath,
		URL:     a.cfg.SnapshotURL,
		Dev:     a.cfg.Dev,
		Metrics: a.metrics,
	}
	return loader.Load(ctx)
}

// cardStore выбирает хранилище отобранных карточек: база, файл или память.
func (a *app) cardStore() curation.Store {
	switch {
	case a.database != nil:
		return a.database.Cards()
	case a.cfg.CardsPath != "":
		return curation.FileStore{Path: a.cfg.CardsPath}
	default:
		logger.Log.Warn("No card store configured; curated cards live in memory only")
		return &curation.MemoryStore{}
	}
}

func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
}
