package logger

import (
	"testing"

	"github.com/plotwise/plotwise/pkg/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}

	// Chained field loggers must not panic
	log.WithField("key", "value").Debug("debug message")
	log.WithFields(map[string]interface{}{
		"a": 1,
		"b": "two",
	}).Info("info message")
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}

	log := New(cfg)
	log.Debug("console output")
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "chatty",
		LogFormat: "json",
	}

	// Unknown levels fall back to a sane default rather than erroring
	log := New(cfg)
	log.Info("still logs")
}
