package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hal9000y/mailwright/internal/classify"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [request]",
		Short: "Show how the template generator reads a request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := classify.Classify(strings.Join(args, " "))

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "category:  %s\nrecipient: %s\nurgency:   %s\n", c.Category, c.Recipient, c.Urgency)
			return err
		},
	}
}
