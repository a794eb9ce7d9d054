package main

import (
	"fmt"

	"gatrack/internal/common/fsutil"
	"gatrack/internal/config"
	"gatrack/internal/registry"
)

// loadConfig reads the config file named by --config, or the first default
// location that exists. Without any file the zero Config is returned.
func loadConfig(path string) (config.Config, string, error) {
	if path == "" {
		p, ok := fsutil.FirstExisting(defaultConfigPaths...)
		if !ok {
			return config.Config{}, "", nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

func loadRegistry(cfg config.Config) (*registry.Registry, error) {
	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return reg, nil
}
