package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultHistoryLimit = 50

type Config struct {
	DataDir      string
	DBPath       string
	ExportDir    string
	HistoryLimit int
}

// fileConfig is the optional on-disk override, read from <data>/config.yaml.
type fileConfig struct {
	ExportDir    string `yaml:"export_dir"`
	HistoryLimit int    `yaml:"history_limit"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".ironlog")
	}

	cfg := Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "ironlog.db"),
		ExportDir:    dataDir,
		HistoryLimit: defaultHistoryLimit,
	}

	overrides, err := loadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}
	if overrides.ExportDir != "" {
		cfg.ExportDir = overrides.ExportDir
	}
	if overrides.HistoryLimit > 0 {
		cfg.HistoryLimit = overrides.HistoryLimit
	}
	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var decoded fileConfig
	if err := yaml.Unmarshal(payload, &decoded); err != nil {
		return fileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return decoded, nil
}
