package main

import (
	"context"
	"fmt"

	"battlecards/internal/logger"
	"battlecards/internal/notify"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var notifySlack bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Poll every configured source once and update the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), cmd, notifySlack)
		},
	}
	cmd.Flags().BoolVar(&notifySlack, "notify", false, "Post to the Slack webhook when new insights were added")
	return cmd
}

func runIngest(ctx context.Context, cmd *cobra.Command, notifySlack bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	total := 0
	for _, src := range cfg.Sources {
		added, err := a.ingester.Ingest(ctx, src)
		if err != nil {
			logger.Log.WithField("source", src.Name).Warnf("Ingest failed: %v", err)
		}
		total += added
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d insights, snapshot holds %d\n", total, len(a.holder.Load()))

	if notifySlack && total > 0 {
		if _, err := notify.NewSlack(cfg.SlackWebhookURL).Send(ctx, notify.DefaultMessage); err != nil {
			return err
		}
	}
	return nil
}
