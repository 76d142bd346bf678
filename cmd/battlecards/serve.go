package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"battlecards/internal/curation"
	"battlecards/internal/fetcher"
	"battlecards/internal/logger"
	"battlecards/internal/queue"
	"battlecards/internal/server"
	"battlecards/internal/worker"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic source poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	defer logger.Log.Info("Application stopped")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	cards, err := curation.NewService(ctx, a.cardStore(), a.metrics)
	if err != nil {
		return err
	}

	// Источники опрашиваются через RabbitMQ, если он настроен, иначе на месте
	var dispatcher fetcher.Dispatcher = a.ingester
	if cfg.RabbitMQ.URL != "" {
		producer, err := queue.NewProducer(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer producer.Close()

		consumer, err := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Workers)
		if err != nil {
			return err
		}
		defer consumer.Close()

		wrk := worker.NewWorker(a.ingester)
		if err := consumer.Consume(wrk.HandleTask); err != nil {
			return err
		}
		dispatcher = queue.SourceDispatcher{Publisher: producer, Queue: cfg.RabbitMQ.Queue}
	}

	if len(cfg.Sources) > 0 {
		go fetcher.StartPolling(ctx, dispatcher, cfg.Sources, time.Duration(cfg.PollInterval)*time.Minute)
	}

	opts := []server.Option{
		server.WithDigestLimit(cfg.DigestLimit),
		server.WithMetrics(a.metrics),
	}
	if a.database != nil {
		opts = append(opts, server.WithDB(a.database))
	}
	srv := server.NewServer(a.holder, cards, opts...)

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Routes()}
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	return httpServer.Shutdown(ctxShutdown)
}
