// Mailwright writes emails from short requests over HTTP, MCP and the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mailwright",
		Short: "Write emails from short requests",
		Long: `mailwright turns a short free-text request and a tone into a complete email.

A configured language model drafts the email; when it is unavailable the
built-in template generator answers instead.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to env file")

	cmd.AddCommand(
		newServeCmd(opts),
		newDraftCmd(opts),
		newClassifyCmd(),
	)

	return cmd
}

// newLogger builds the process logger. Output goes to logFile when set,
// otherwise to defaultOut; an empty defaultOut discards logs.
func newLogger(development bool, logFile, defaultOut string) (*zap.Logger, error) {
	out := defaultOut
	if logFile != "" {
		out = logFile
	}
	if out == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("cfg.Build failed: %w", err)
	}

	return log, nil
}
