package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "zqx.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/zqx"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	home    string
	workDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()

	return &Loader{logger: logger, home: home, workDir: wd}
}

// Load loads configuration with layered precedence, later layers overriding
// only the keys they set:
// 1. Default config
// 2. User config (~/.config/zqx/config.yaml)
// 3. Project config (zqx.yaml in the working directory or a parent)
// 4. explicit, when non-empty (the --config flag); it must exist
func (l *Loader) Load(explicit string) (*Config, error) {
	config := DefaultConfig()

	if path := l.userConfigPath(); path != "" {
		if userConfig, err := readFile(path, &Config{}); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", path))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	if path := l.findProjectConfig(); path != "" {
		if projectConfig, err := readFile(path, &Config{}); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", path))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", path), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if explicit != "" {
		explicitConfig, err := readFile(explicit, &Config{})
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", explicit))
		config.Merge(explicitConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) userConfigPath() string {
	if l.home == "" {
		return ""
	}

	return filepath.Join(l.home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for zqx.yaml in the working directory and its parents
func (l *Loader) findProjectConfig() string {
	if l.workDir == "" {
		return ""
	}

	dir := l.workDir
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
