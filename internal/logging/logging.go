// Package logging builds the zap logger shared by koko's services.
package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/config"
	"github.com/kokostudy/koko/internal/store"
)

// New returns a production or development logger at cfg.Level. When
// cfg.File is set, output goes to that file instead of stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zc.Level = level

	if cfg.File != "" {
		if err := store.EnsureDir(cfg.File); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// DefaultFile returns the log file used while the TUI owns the terminal.
func DefaultFile() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "koko.log"), nil
}
