package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete ladle configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Output  OutputConfig  `toml:"output"`
	Check   CheckConfig   `toml:"check"`
	Cache   CacheConfig   `toml:"cache"`
}

// GeneralConfig contains general ladle settings.
type GeneralConfig struct {
	// ScoopRoot overrides Scoop root discovery (SCOOP env, then ~/scoop).
	ScoopRoot string `toml:"scoop_root"`

	// AutoConfirm skips confirmation prompts when true (like -y flag).
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun shows what would happen without executing when true.
	DryRun bool `toml:"dry_run"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables detailed output.
	Verbose bool `toml:"verbose"`
}

// CheckConfig contains version-check settings.
type CheckConfig struct {
	// UserAgent overrides the default User-Agent for check fetches.
	UserAgent string `toml:"user_agent"`

	// GitHubToken authenticates releases API calls, lifting the anonymous
	// rate limit.
	GitHubToken string `toml:"github_token"`
}

// CacheConfig controls the on-disk catalog snapshot cache.
type CacheConfig struct {
	// Enabled turns the bbolt catalog cache on.
	Enabled bool `toml:"enabled"`

	// TTLMinutes is how long a cached catalog snapshot stays fresh.
	TTLMinutes int `toml:"ttl_minutes"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 60,
		},
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// Root resolves the Scoop install root: the configured override wins, then
// the SCOOP environment variable, then ~/scoop.
func (c *Config) Root() string {
	if c.General.ScoopRoot != "" {
		return c.General.ScoopRoot
	}
	return DiscoverScoopRoot()
}

// CacheTTL returns the configured cache freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	minutes := c.Cache.TTLMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
