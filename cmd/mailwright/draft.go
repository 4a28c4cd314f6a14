package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hal9000y/mailwright/internal/config"
	"github.com/hal9000y/mailwright/internal/drafter"
	"github.com/hal9000y/mailwright/internal/generate"
	"github.com/hal9000y/mailwright/internal/template"
)

type draftOptions struct {
	tone      string
	recipient string
	sender    string
	offline   bool
}

func newDraftCmd(root *rootOptions) *cobra.Command {
	opts := draftOptions{}

	cmd := &cobra.Command{
		Use:   "draft [request]",
		Short: "Write one email and print it",
		Example: `  mailwright draft --tone formal "Can we schedule a meeting next week?"
  mailwright draft --offline --tone casual just checking in on progress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.envFile)
			if err != nil {
				return fmt.Errorf("config.Load failed: %w", err)
			}

			log, err := newLogger(cfg.LogDevelopment, "", "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var d drafter.Drafter
			if !opts.offline {
				d, err = drafter.New(cmd.Context(), cfg.Drafter())
				if err != nil {
					log.Warn("drafter disabled", zap.Error(err))
					d = nil
				}
			}

			gen := generate.New(d, log, generate.WithTimeout(cfg.LLMTimeout))
			res, err := gen.Generate(cmd.Context(), generate.Request{
				Input:         strings.Join(args, " "),
				Tone:          opts.tone,
				RecipientName: opts.recipient,
				SenderName:    opts.sender,
			})
			if err != nil {
				return fmt.Errorf("gen.Generate failed: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.tone, "tone", string(template.DefaultTone), "Tone of the email")
	cmd.Flags().StringVar(&opts.recipient, "recipient", "", "Recipient name used in the greeting")
	cmd.Flags().StringVar(&opts.sender, "sender", "", "Sender name used in the signature")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip the language model and use templates only")

	return cmd
}
