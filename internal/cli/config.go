package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensefetch/pkg/cache"
	"github.com/matzehuels/licensefetch/pkg/httputil"
	"github.com/matzehuels/licensefetch/pkg/license"
)

const configFileName = "config.toml"

// Config holds settings read from the TOML config file. Command-line flags
// override any value set here.
//
//	timeout = "10s"
//	user_agent = "licensefetch (+https://example.com/contact)"
//	redis_url = "redis://localhost:6379/0"
//	cache_prefix = "ci:"
//	fail_fast = true
type Config struct {
	Timeout     time.Duration `toml:"timeout"`
	RawHost     string        `toml:"raw_host"`
	UserAgent   string        `toml:"user_agent"`
	CacheTTL    time.Duration `toml:"cache_ttl"`
	RedisURL    string        `toml:"redis_url"`
	CachePrefix string        `toml:"cache_prefix"`
	FailFast    bool          `toml:"fail_fast"`
	Registry    string        `toml:"registry"`
}

func defaultConfig() Config {
	return Config{
		Timeout:  httputil.DefaultTimeout,
		RawHost:  license.DefaultRawHost,
		CacheTTL: cache.TTLPage,
		Registry: registryPyPI,
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/licensefetch/config.toml, or an
// empty string when no home directory is known.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configFileName)
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly. Unknown keys are logged and ignored.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String(), "file", path)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative, got %s", c.CacheTTL)
	}
	if _, err := registryNamed(c.Registry, nil); err != nil {
		return err
	}
	return nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = defaultConfigPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), displayPath(path))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			printKeyValue("timeout", cfg.Timeout.String())
			printKeyValue("raw_host", cfg.RawHost)
			printKeyValue("user_agent", displayValue(cfg.UserAgent))
			printKeyValue("cache_ttl", cfg.CacheTTL.String())
			printKeyValue("redis_url", displayValue(cfg.RedisURL))
			printKeyValue("cache_prefix", displayValue(cfg.CachePrefix))
			printKeyValue("fail_fast", fmt.Sprint(cfg.FailFast))
			printKeyValue("registry", cfg.Registry)
			return nil
		},
	})

	return cmd
}

func displayValue(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
