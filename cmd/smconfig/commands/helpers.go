package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/systmms/smconfig/internal/config"
	dserrors "github.com/systmms/smconfig/internal/errors"
	"github.com/systmms/smconfig/pkg/provider"
	"gopkg.in/yaml.v3"
)

const (
	formatEnv  = "env"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) bool {
	switch format {
	case formatEnv, formatJSON, formatYAML:
		return true
	}
	return false
}

// writeData prints data in the given format, keeping field order.
func writeData(w io.Writer, data provider.ConfigData, format string) error {
	switch format {
	case formatJSON:
		raw, err := data.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(w)
		return err

	case formatYAML:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range data.Keys {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: data.Data[k]},
			)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	default:
		for _, k := range data.Keys {
			if !validEnvName(k) {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Field '%s' is not a valid shell variable name", k),
					Suggestion: "Use --format json or yaml, or select fields with --key",
				}
			}
		}
		for _, k := range data.Keys {
			if _, err := fmt.Fprintf(w, "%s=%s\n", k, envValue(data.Data[k])); err != nil {
				return err
			}
		}
		return nil
	}
}

// envValue quotes v as a single shell word. The result is safe to eval:
// nothing inside it is expanded and newlines are kept as-is.
func envValue(v string) string {
	return shellescape.Quote(v)
}

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validEnvName reports whether name can be assigned in a POSIX shell.
func validEnvName(name string) bool {
	return envNamePattern.MatchString(name)
}

// envName returns the environment variable read for a setting.
func envName(option string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(option, ".", "_"))
}
