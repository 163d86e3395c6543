package utils

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// InitLogger configures the process-wide logger. Production emits JSON.
func InitLogger(level string, production bool) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "kacchi",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	if production {
		logger.SetFormatter(log.JSONFormatter)
	}
	log.SetDefault(logger)
}
