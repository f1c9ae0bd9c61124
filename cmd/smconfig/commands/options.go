package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/smconfig/internal/config"
	dserrors "github.com/systmms/smconfig/internal/errors"
	"github.com/systmms/smconfig/pkg/provider"
	"gopkg.in/yaml.v3"
)

func NewOptionsCommand(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the settings the provider recognizes",
		Long: `Display every recognized provider setting with its type, default and
description. Settings may be given in the --config file (nested or dotted keys)
or as SMCONFIG_* environment variables with dots replaced by underscores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := provider.ConfigDef()
			out := cmd.OutOrStdout()

			switch format {
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintf(w, "NAME\tTYPE\tDEFAULT\tIMPORTANCE\tENV\n")
				_, _ = fmt.Fprintf(w, "----\t----\t-------\t----------\t---\n")
				for _, d := range defs {
					def := d.Default
					if def == "" {
						def = "-"
					}
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.Type, def, d.Importance, envName(d.Name))
				}
				return w.Flush()

			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(defs); err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
				return nil

			case formatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(defs); err != nil {
					return fmt.Errorf("failed to encode YAML: %w", err)
				}
				return enc.Close()

			default:
				return dserrors.UserError{
					Message:    fmt.Sprintf("Unknown output format '%s'", format),
					Suggestion: "Use --format table, json or yaml",
				}
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")

	return cmd
}
