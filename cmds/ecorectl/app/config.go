package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mandelsoft/goutils/generics"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"
)

const CONFIG_FILE = ".ecorectl"

// Config holds the defaults for the command line flags.
type Config struct {
	LogLevel *string `json:"logLevel,omitempty"`
	Depth    *int    `json:"depth,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Output   *string `json:"output,omitempty"`
}

// GetConfig reads the configuration files from the home directory
// and the working directory, an explicitly given file and
// finally the ECORECTL_* environment variables.
func GetConfig(fs vfs.FileSystem, path string) (*Config, error) {
	var cfg Config

	dir, err := os.UserHomeDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, filepath.Join(dir, CONFIG_FILE)))
	}
	MergeConfig(&cfg, ReadConfig(fs, CONFIG_FILE))

	if path != "" {
		data, err := vfs.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
		}
		var add Config
		err = yaml.Unmarshal(data, &add)
		if err != nil {
			return nil, fmt.Errorf("invalid config file %q: %w", path, err)
		}
		MergeConfig(&cfg, &add)
	}

	if v := os.Getenv("ECORECTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = generics.Pointer(v)
	}
	if v := os.Getenv("ECORECTL_OUTPUT"); v != "" {
		cfg.Output = generics.Pointer(v)
	}
	if v := os.Getenv("ECORECTL_DEPTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ECORECTL_DEPTH %q", v)
		}
		cfg.Depth = generics.Pointer(i)
	}
	if v := os.Getenv("ECORECTL_WIDTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ECORECTL_WIDTH %q", v)
		}
		cfg.Width = generics.Pointer(i)
	}
	return &cfg, nil
}

func ReadConfig(fs vfs.FileSystem, path string) *Config {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Info("ignoring invalid config file {{path}}: {{error}}", "path", path, "error", err)
		return nil
	}
	return &cfg
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.LogLevel != nil {
		cfg.LogLevel = add.LogLevel
	}
	if add.Depth != nil {
		cfg.Depth = add.Depth
	}
	if add.Width != nil {
		cfg.Width = add.Width
	}
	if add.Output != nil {
		cfg.Output = add.Output
	}
}
