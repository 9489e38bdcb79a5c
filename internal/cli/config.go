package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "FOLIO"

// Config is the client configuration resolved from flags, FOLIO_* variables
// and an optional folio.yaml, in that order of precedence.
type Config struct {
	Server   string
	Timeout  time.Duration
	Database string
	NoColor  bool
	Verbose  bool
}

func loadConfig(v *viper.Viper, cmd *cobra.Command, configFile string) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("timeout", 10*time.Second)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/folio")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Server:   strings.TrimRight(strings.TrimSpace(v.GetString("server")), "/"),
		Timeout:  v.GetDuration("timeout"),
		Database: strings.TrimSpace(v.GetString("database")),
		NoColor:  v.GetBool("no-color"),
		Verbose:  v.GetBool("verbose"),
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Database == "" && cfg.Server == "" {
		return Config{}, errors.New("either --server or --database is required")
	}
	return cfg, nil
}
