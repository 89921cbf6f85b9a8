package cli

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/Alan-Collins/SpellTower-solver/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ConfigFile string
	ServerURL  string
	Output     string
	Verbose    bool

	// App is the resolved application configuration, set before any
	// command runs
	App *config.Config
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigFile: os.Getenv(config.EnvPrefix + "_CONFIG"),
		ServerURL:  os.Getenv(config.EnvPrefix + "_SERVER"),
		Output:     "text",
		Verbose:    false,
	}
}

// Remote reports whether commands go to an HTTP server
func (c *Config) Remote() bool {
	return c.ServerURL != ""
}

// appFlags maps config keys to the persistent flags that override them
var appFlags = map[string]string{
	"dictionary":        "dictionary",
	"scoring":           "scoring",
	"search.workers":    "workers",
	"search.max_path":   "max-path",
	"search.min_length": "min-length",
}

// LoadApp resolves the application configuration from the config file,
// environment and any flags set on the command line
func (c *Config) LoadApp(flags *pflag.FlagSet) error {
	bindings := make(map[string]*pflag.Flag, len(appFlags))
	for key, name := range appFlags {
		bindings[key] = flags.Lookup(name)
	}

	appCfg, err := config.Load(c.ConfigFile, bindings)
	if err != nil {
		return err
	}
	c.App = appCfg
	return nil
}
