// Package config provides the configuration loader for plotpy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the runtime configuration.
//
// When path names a file it must exist and is parsed. When path names a directory, or is
// empty for the working directory, plotpy.yaml is searched for from there upwards and the
// defaults are used if none is found. PLOTPY_PYTHON overrides the interpreter either way.
func (l *Loader) Load(path string) (domain.Config, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if configPath != "" {
		cfg, err = l.loadFile(configPath)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if python, ok := os.LookupEnv(domain.PythonEnvVar); ok && python != "" {
		l.Logger.Debug(fmt.Sprintf("interpreter overridden by %s=%s", domain.PythonEnvVar, python))
		cfg.Python = python
	}

	return cfg, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrLoadConfig, err)
		}
		path = cwd
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrLoadConfig, err), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	currentDir := path
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadFile(configPath string) (domain.Config, error) {
	// #nosec G304 -- configPath is chosen by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Config{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrLoadConfig, err), "path", configPath)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrLoadConfig, err), "failed to parse config file"), "path", configPath)
	}

	l.Logger.Debug("loaded configuration from " + configPath)
	return resolve(file, filepath.Dir(configPath))
}

// resolve applies file values over the defaults. Relative paths are anchored at root.
func resolve(file File, root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.OutputDir = root
	cfg.HistoryPath = filepath.Join(root, domain.DefaultHistoryPath)

	if file.Python != "" {
		cfg.Python = file.Python
	}

	if file.WaitDelay != "" {
		d, err := time.ParseDuration(file.WaitDelay)
		if err != nil || d <= 0 {
			return domain.Config{}, zerr.With(fmt.Errorf("%w", domain.ErrInvalidConfig), "wait_delay", file.WaitDelay)
		}
		cfg.WaitDelay = d
	}

	if file.OutputDir != "" {
		cfg.OutputDir = anchor(root, file.OutputDir)
	}

	if file.History != nil {
		cfg.HistoryPath = ""
		if *file.History != "" {
			cfg.HistoryPath = anchor(root, *file.History)
		}
	}

	return cfg, nil
}

func anchor(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
