package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath          string      `toml:"db_path"`
	DisplayFilter   string      `toml:"display_filter"` // "All", "Completed", "NotCompleted"
	UrgencySortDesc bool        `toml:"urgency_sort_desc"`
	Theme           ThemeConfig `toml:"theme"`
}

type ThemeConfig struct {
	Low       string `toml:"low"`
	Medium    string `toml:"medium"`
	High      string `toml:"high"`
	Critical  string `toml:"critical"`
	Selection string `toml:"selection"`
	Border    string `toml:"border"`
	Highlight string `toml:"highlight"`
}

func DefaultConfig() Config {
	return Config{
		DBPath:          filepath.Join(ConfigDir(), "checklist.sqlite"),
		DisplayFilter:   "All",
		UrgencySortDesc: true,
		Theme: ThemeConfig{
			Low:       "#95E1D3", // mint
			Medium:    "#FCE38A", // yellow
			High:      "#F38181", // coral
			Critical:  "#FF6B6B", // red
			Selection: "#4ECDC4", // teal
			Border:    "#AA96DA", // purple
			Highlight: "#FFFFD0",
		},
	}
}

func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "checklist")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "checklist.toml")
}

func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func Load() (*Config, error) {
	if !Exists() {
		if err := createDefaultConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	_, err := toml.DecodeFile(ConfigPath(), &cfg)
	if err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	}
	if cfg.DisplayFilter == "" {
		cfg.DisplayFilter = defaults.DisplayFilter
	}
	if cfg.Theme.Low == "" {
		cfg.Theme.Low = defaults.Theme.Low
	}
	if cfg.Theme.Medium == "" {
		cfg.Theme.Medium = defaults.Theme.Medium
	}
	if cfg.Theme.High == "" {
		cfg.Theme.High = defaults.Theme.High
	}
	if cfg.Theme.Critical == "" {
		cfg.Theme.Critical = defaults.Theme.Critical
	}
	if cfg.Theme.Selection == "" {
		cfg.Theme.Selection = defaults.Theme.Selection
	}
	if cfg.Theme.Border == "" {
		cfg.Theme.Border = defaults.Theme.Border
	}
	if cfg.Theme.Highlight == "" {
		cfg.Theme.Highlight = defaults.Theme.Highlight
	}

	return &cfg, nil
}

func createDefaultConfig() error {
	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return err
	}

	cfg := DefaultConfig()

	f, err := os.Create(ConfigPath())
	if err != nil {
		return err
	}
	defer f.Close()

	// Write header comment
	header := `# checklist configuration
# Auto-generated on first run

# display_filter: "All", "Completed" or "NotCompleted"
`
	f.WriteString(header)

	return toml.NewEncoder(f).Encode(cfg)
}

// Save writes the config through a temp file so a failed write
// cannot truncate the existing one.
func Save(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return err
	}

	tmp := ConfigPath() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, ConfigPath())
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{DBPath: %s, DisplayFilter: %s, UrgencySortDesc: %v}",
		c.DBPath, c.DisplayFilter, c.UrgencySortDesc)
}
