package logging

import (
	"testing"

	"github.com/bundestweets/bundestweets/pkg/config"
)

func TestInitLogger(t *testing.T) {
	cfg := &config.LoggingConfig{
		Level:  "INFO",
		Format: "json",
	}

	if err := InitLogger(cfg); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger should be set after InitLogger")
	}
}

func TestInitLoggerBadLevelFallsBack(t *testing.T) {
	cfg := &config.LoggingConfig{
		Level:  "not-a-level",
		Format: "text",
	}

	if err := InitLogger(cfg); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
}

func TestWithComponent(t *testing.T) {
	logger := WithComponent("linker")
	if logger == nil {
		t.Fatal("WithComponent returned nil")
	}
}
