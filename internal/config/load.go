package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment, e.g. TASK_API_SERVER_PORT.
const EnvPrefix = "TASK_API"

// DefaultEnvironment is reported by the health endpoint when ENV is unset.
const DefaultEnvironment = "production"

// conventionalEnv maps configuration keys to the unprefixed variable names
// container platforms set by convention. Prefixed names win.
var conventionalEnv = map[string]string{
	"server.host":      "HOST",
	"server.port":      "PORT",
	"server.log_level": "LOG_LEVEL",
	"app.environment":  "ENV",
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"log-level": "server.log_level",
}

// LoadOption customizes how Load reads configuration.
type LoadOption func(v *viper.Viper) error

// WithConfigFile reads configuration from an explicit file path.
// A missing file is an error when the path was given explicitly.
func WithConfigFile(path string) LoadOption {
	return func(v *viper.Viper) error {
		if path == "" {
			return nil
		}
		v.SetConfigFile(path)
		return nil
	}
}

// WithFlags binds the known command-line flags from fs. Flags only take
// precedence when they were set explicitly.
func WithFlags(fs *pflag.FlagSet) LoadOption {
	return func(v *viper.Viper) error {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
		return nil
	}
}

// Load configuration from flags, environment variables and an optional
// config file, in that order of precedence, falling back to defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...LoadOption) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, conventional := range conventionalEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, conventional); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", conventional, err)
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	explicitFile := v.ConfigFileUsed() != ""

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("app.name", "Task Management API")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", DefaultEnvironment)
}
