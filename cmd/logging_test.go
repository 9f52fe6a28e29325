package cmd

import (
	"testing"

	"github.com/vibast-solutions/ms-go-menu/config"

	"github.com/sirupsen/logrus"
)

func TestConfigureLogging(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}}
	if err := configureLogging(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logrus.GetLevel())
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("expected text formatter")
	}

	cfg.Log = config.LogConfig{Level: "info", Format: "JSON"}
	if err := configureLogging(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected json formatter")
	}
}

func TestConfigureLoggingRejectsUnknownValues(t *testing.T) {
	if err := configureLogging(&config.Config{Log: config.LogConfig{Level: "loud", Format: "json"}}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if err := configureLogging(&config.Config{Log: config.LogConfig{Level: "info", Format: "xml"}}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
