package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/emi-calculator/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger builds the process logger from the logging section of the
// configuration. A non-empty levelOverride (the --log-level flag) wins over
// the configured level.
func initializeLogger(loggingConfig config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	levelText := loggingConfig.Level
	if levelOverride != "" {
		levelText = levelOverride
	}
	level, err := parseLogLevel(levelText)
	if err != nil {
		return nil, err
	}

	zapConfig, err := baseLogConfig(loggingConfig.Format)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if path := loggingConfig.OutputFile; path != "" {
		if err := ensureLogFile(path); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = []string{path}
		zapConfig.ErrorOutputPaths = []string{path}
	}

	return zapConfig.Build()
}

// parseLogLevel defers to zapcore, additionally accepting "warning" and
// treating an empty level as info.
func parseLogLevel(text string) (zapcore.Level, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	switch text {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}

	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return level, fmt.Errorf("invalid log level: %s", text)
	}
	return level, nil
}

func baseLogConfig(format string) (zap.Config, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return zap.NewProductionConfig(), nil
	case "console":
		return zap.NewDevelopmentConfig(), nil
	}
	return zap.Config{}, fmt.Errorf("invalid log format: %s", format)
}

// ensureLogFile creates the file and its directory so a bad path is reported
// at startup instead of on the first write.
func ensureLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file.Close()
}
