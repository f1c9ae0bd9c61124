// Package config loads provider settings for the smconfig command from a
// settings file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	dserrors "github.com/systmms/smconfig/internal/errors"
	"github.com/systmms/smconfig/internal/logging"
	"github.com/systmms/smconfig/pkg/provider"
	"github.com/systmms/smconfig/pkg/secretsmanager"
)

// EnvPrefix is prepended to environment variable names. aws.region is read
// from SMCONFIG_AWS_REGION.
const EnvPrefix = "SMCONFIG"

// Config holds the runtime configuration
type Config struct {
	Path   string
	Logger *logging.Logger

	// Factory builds the store client. Nil means AWS.
	Factory provider.ClientFactory

	// Settings is the raw settings map handed to Configure. Load fills it.
	Settings map[string]any
}

// Load reads the recognized settings from the file at Path, if any, and from
// the environment. Environment values win over file values.
func (c *Config) Load() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if c.Path != "" {
		v.SetConfigFile(c.Path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Settings file not found: %s", c.Path),
					Suggestion: "Create the file or drop --config to use environment variables only",
					Err:        err,
				}
			}
			return dserrors.UserError{
				Message:    fmt.Sprintf("Failed to read settings file %s", c.Path),
				Suggestion: "Check the file is valid YAML or JSON",
				Err:        err,
			}
		}
		c.logger().Debug("Using settings file %s", v.ConfigFileUsed())
	}

	settings := make(map[string]any)
	for _, def := range provider.ConfigDef() {
		if !v.IsSet(def.Name) {
			continue
		}
		settings[def.Name] = v.Get(def.Name)
	}
	c.Settings = settings
	return nil
}

// NewProvider builds and configures a provider from Settings.
func (c *Config) NewProvider(opts ...secretsmanager.Option) (*secretsmanager.ConfigProvider, error) {
	base := []secretsmanager.Option{secretsmanager.WithLogger(c.logger())}
	if c.Factory != nil {
		base = append(base, secretsmanager.WithClientFactory(c.Factory))
	}

	p := secretsmanager.New(append(base, opts...)...)
	if err := p.Configure(c.Settings); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Config) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}
