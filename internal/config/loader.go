package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// configFileNames are tried in order in each directory.
var configFileNames = []string{
	"csfmt.yml",
	"csfmt.yaml",
	".csfmt.yml",
	".csfmt.yaml",
}

// Discover returns the nearest config file in dir or one of its parents,
// or an empty string when there is none. Within one directory the names
// are tried in configFileNames order.
func Discover(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load reads the config file at configPath, or the one Discover finds from
// the working directory when configPath is empty. Without a file it
// returns DefaultConfig. Fields missing from the file keep their defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		if configPath = Discover(wd); configPath == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file not found: %s", configPath)
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
	}
	if cfg.Formatter.Options == nil {
		cfg.Formatter.Options = map[string]string{}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// validate reports every setting the runner cannot use.
func (c *Config) validate() error {
	var err error
	if c.Runner.Jobs < 0 {
		err = multierr.Append(err, fmt.Errorf("runner.jobs must not be negative, got %d", c.Runner.Jobs))
	}
	for _, ext := range c.Runner.Extensions {
		if !strings.HasPrefix(ext, ".") {
			err = multierr.Append(err, fmt.Errorf("runner.extensions entry %q must start with a dot", ext))
		}
	}
	for _, pattern := range c.Runner.Exclude {
		if _, globErr := glob.Compile(pattern, '/'); globErr != nil {
			err = multierr.Append(err, fmt.Errorf("runner.exclude pattern %q: %w", pattern, globErr))
		}
	}
	return err
}
