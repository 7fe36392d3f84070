package config

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates the logger described by c. The returned closer releases
// the log file, if any.
func (c LogConfig) NewLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log.level: %w", err)
	}
	logger := log.New()
	logger.SetLevel(level)
	if c.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{})
	}

	if c.File == "" {
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(nil), nil
	}
	w := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
	}
	logger.SetOutput(w)
	return logger, w, nil
}
