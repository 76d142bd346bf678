package main

import (
	"fmt"

	"battlecards/internal/digest"
	"battlecards/internal/filter"
	"battlecards/internal/notify"

	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	var (
		criteria filter.Criteria
		limit    int
		send     bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compose a plain-text digest from the current snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if limit <= 0 {
				limit = cfg.DigestLimit
			}
			text := digest.Compose(filter.Filter(a.holder.Load(), criteria), limit)
			a.metrics.DigestsComposed.Inc()

			if send {
				_, err := notify.NewSlack(cfg.SlackWebhookURL).Send(ctx, text)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&criteria.Query, "query", "q", "", "Case-insensitive text search over title, summary and tags")
	cmd.Flags().StringVar(&criteria.Competitor, "competitor", filter.AllCompetitors, "Competitor name or All")
	cmd.Flags().StringVar(&criteria.From, "from", "", "Lower date bound (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&criteria.To, "to", "", "Upper date bound (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of insights in the digest")
	cmd.Flags().BoolVar(&send, "send", false, "Post the digest to the Slack webhook instead of printing it")
	return cmd
}
