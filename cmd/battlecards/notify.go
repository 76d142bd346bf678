package main

import (
	"battlecards/internal/notify"

	"github.com/spf13/cobra"
)

func newNotifyCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Post a message to the configured Slack webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, err = notify.NewSlack(cfg.SlackWebhookURL).Send(cmd.Context(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&text, "text", notify.DefaultMessage, "Message text")
	return cmd
}
