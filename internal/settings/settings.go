// Package settings persists the last-used run configuration so the
// next invocation can offer "use previous settings".
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Settings is the remembered run configuration.
type Settings struct {
	URLs       []string `mapstructure:"urls" json:"urls"`
	Keywords   string   `mapstructure:"keywords" json:"keywords"`
	StartDate  string   `mapstructure:"start_date" json:"start_date"`
	OutputFile string   `mapstructure:"output_file" json:"output_file"`
	Formats    string   `mapstructure:"formats" json:"formats"`
	LastRun    string   `mapstructure:"last_run" json:"last_run"`
}

// IsZero reports whether no previous run has been recorded.
func (s Settings) IsZero() bool {
	return len(s.URLs) == 0 && s.LastRun == ""
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "newsreap", "settings.json"), nil
}

// Load reads the settings file. A missing file yields zero settings
// and no error.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Save overwrites the settings file, stamping the run time.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	s.LastRun = time.Now().Format("2006-01-02 15:04:05")

	v := viper.New()
	v.SetConfigType("json")
	v.Set("urls", s.URLs)
	v.Set("keywords", s.Keywords)
	v.Set("start_date", s.StartDate)
	v.Set("output_file", s.OutputFile)
	v.Set("formats", s.Formats)
	v.Set("last_run", s.LastRun)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
