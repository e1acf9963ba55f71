// Package cfg provides larch's configuration types, along with
// functionality for reading, writing and watching the configuration file.
package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config contains all of the configuration for larch.
type Config struct {
	// The display to manage. Empty defers to the DISPLAY environment
	// variable.
	Display string `yaml:"display"`

	Log LogSettings `yaml:"log"`
}

// LogSettings controls the logger output.
type LogSettings struct {
	Level  string `yaml:"level"`  // error, warn, info, debug or verbose
	Path   string `yaml:"path"`   // Log file path. Empty logs to the console only.
	Format string `yaml:"format"` // Entry format. Empty uses the default.
}

var DefaultConfig = Config{
	Log: LogSettings{
		Level: "info",
		Path:  "/tmp/larch.log",
	},
}

// GetConfig attempts to read the user's configuration file and return it in
// its parsed form.
func GetConfig() (*Config, error) {
	path, err := GetPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &conf, nil
}

// GetPath returns the path to the user's configuration file.
func GetPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = home + "/.config"
	}
	return dir + "/larch.yml", nil
}

// WriteDefault writes the default configuration file and returns its path.
func WriteDefault() (string, error) {
	path, err := GetPath()
	if err != nil {
		return "", fmt.Errorf("could not locate config dir: %w", err)
	}
	data, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write default config: %w", err)
	}
	return path, nil
}
