package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/smconfig/internal/config"
	dserrors "github.com/systmms/smconfig/internal/errors"
	"github.com/systmms/smconfig/pkg/provider"
)

// retryDelay is the wait before the first retry. It doubles per attempt.
var retryDelay = 500 * time.Millisecond

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		keys    []string
		format  string
		retries int
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Resolve a secret path into configuration entries",
		Long: `Fetch the secret at <path> (joined with secret.prefix) and print its
fields. Without --key every field is printed in stored order. With --key only
the named fields are printed, in the order given; missing and null fields are
skipped.

Examples:
  # Every field as KEY=value lines
  smconfig get database

  # Two fields as JSON
  smconfig get database --key user --key pass --format json

  # Use in scripts
  eval "$(smconfig get kafka --key username --key password)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Unknown output format '%s'", format),
					Suggestion: "Use --format env, json or yaml",
				}
			}
			if retries < 0 {
				return dserrors.UserError{
					Message:    "--retries must not be negative",
					Suggestion: "Use --retries 0 to disable retries",
				}
			}

			if err := cfg.Load(); err != nil {
				return err
			}

			p, err := cfg.NewProvider()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := p.Close(); cerr != nil {
					cfg.Logger.Warn("%v", cerr)
				}
			}()

			data, err := getWithRetry(cmd.Context(), cfg, p, args[0], keys, retries)
			if err != nil {
				return dserrors.ResolutionError(err)
			}

			cfg.Logger.Debug("Resolved %d field(s), reuse for %s", data.Len(), data.TTL)
			return writeData(cmd.OutOrStdout(), data, format)
		},
	}

	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "Field to return (repeatable, default all)")
	cmd.Flags().StringVarP(&format, "format", "f", formatEnv, "Output format: env, json or yaml")
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry transient failures this many times")

	return cmd
}

func getWithRetry(ctx context.Context, cfg *config.Config, p provider.ConfigProvider, path string, keys []string, retries int) (provider.ConfigData, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	delay := retryDelay
	for attempt := 0; ; attempt++ {
		data, err := p.Get(ctx, path, keys...)
		if err == nil || attempt >= retries || !dserrors.IsRetryable(err) {
			return data, err
		}

		cfg.Logger.Warn("Attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
		select {
		case <-ctx.Done():
			return provider.ConfigData{}, err
		case <-time.After(delay):
		}
		delay *= 2
	}
}
