package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	mu sync.Mutex `yaml:"-"`

	DataDir string `yaml:"data_dir"`

	Backup BackupConfig `yaml:"backup"`
	Web    WebConfig    `yaml:"web"`
	Ledger LedgerConfig `yaml:"ledger"`
	Labels LabelsConfig `yaml:"labels"`
	Scale  ScaleConfig  `yaml:"scale"`
}

// BackupConfig controls the startup copy of every table.
type BackupConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WebConfig defines the command surface listener.
type WebConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LedgerConfig tunes identifier allocation.
type LedgerConfig struct {
	FirstLotNumber int64 `yaml:"first_lot_number"`
	IDWidth        int   `yaml:"id_width"`
}

// LabelsConfig controls the label renderer subscriber.
type LabelsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // relative paths are under data_dir
}

// ScaleConfig points at the reading file kept current by the scale poller.
// An empty path means no scale is attached.
type ScaleConfig struct {
	ReadingFile string        `yaml:"reading_file"`
	MaxAge      time.Duration `yaml:"max_age"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		DataDir: "data",
		Backup: BackupConfig{
			Enabled: true,
		},
		Web: WebConfig{
			Host:           "127.0.0.1",
			Port:           8090,
			AllowedOrigins: []string{"http://localhost:*", "app://*"},
		},
		Ledger: LedgerConfig{
			FirstLotNumber: 1001,
			IDWidth:        4,
		},
		Labels: LabelsConfig{
			Enabled: true,
			Dir:     "labels",
		},
		Scale: ScaleConfig{
			MaxAge: 10 * time.Second,
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the ledgers cannot work with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Ledger.FirstLotNumber <= 0 {
		return fmt.Errorf("ledger.first_lot_number must be positive, got %d", c.Ledger.FirstLotNumber)
	}
	if c.Ledger.IDWidth <= 0 || c.Ledger.IDWidth > 12 {
		return fmt.Errorf("ledger.id_width must be between 1 and 12, got %d", c.Ledger.IDWidth)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	return nil
}

// LabelsDir returns the label directory, resolved against the data directory.
func (c *Config) LabelsDir() string {
	if filepath.IsAbs(c.Labels.Dir) {
		return c.Labels.Dir
	}
	return filepath.Join(c.DataDir, c.Labels.Dir)
}

// Addr returns the host:port the command surface listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
