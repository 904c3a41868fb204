package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// Config is the daemon configuration, stored as TOML at
// <data dir>/config.toml.
type Config struct {
	API        APIConfig        `toml:"api"`
	Data       DataConfig       `toml:"data"`
	Engine     EngineConfig     `toml:"engine"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// DataConfig configures on-disk state.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// EngineConfig configures the tick loop.
type EngineConfig struct {
	TickInterval string `toml:"tick_interval"`
}

// ThresholdsConfig seeds the decision cutoffs on first run. Once the
// rider changes them through the API or CLI, the persisted settings win.
type ThresholdsConfig struct {
	MinPrice      int64 `toml:"min_price"`
	MinPricePerKm int64 `toml:"min_price_per_km"`
}

// DefaultConfig returns the default daemon configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          7870,
			EnableMetrics: true,
		},
		Data: DataConfig{
			Dir: "", // resolved to ~/.ghostrider by DataDir
		},
		Engine: EngineConfig{
			TickInterval: "1s",
		},
		Thresholds: ThresholdsConfig{
			MinPrice:      3000,
			MinPricePerKm: 2500,
		},
	}
}

// DataDir resolves the state directory, defaulting to ~/.ghostrider.
func (c Config) DataDir() string {
	if c.Data.Dir != "" {
		return c.Data.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghostrider"
	}
	return filepath.Join(home, ".ghostrider")
}

// ListenAddr returns the host:port pair for the HTTP listener.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// TickInterval parses the tick interval, falling back to one second on
// anything unparseable or non-positive.
func (c Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Engine.TickInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// SeedThresholds converts the configured cutoffs to domain thresholds.
func (c Config) SeedThresholds() domain.Thresholds {
	return domain.Thresholds{
		MinPrice:      c.Thresholds.MinPrice,
		MinPricePerKm: c.Thresholds.MinPricePerKm,
	}
}

// ConfigPath returns the config file location inside the data dir.
func (c Config) ConfigPath() string {
	return filepath.Join(c.DataDir(), "config.toml")
}

// LoadConfig reads the config at path, returning defaults when the file
// does not exist. Unknown keys are an error so typos surface early.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", undecoded[0], path)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating the data dir if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
