package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdstream/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.WarnLevel},
		{"", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := logging.New(tt.level)
			if logger.GetLevel() != tt.want {
				t.Errorf("New(%q) level = %v, want %v", tt.level, logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestDefault_NotNil(t *testing.T) {
	if logging.Default() == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestFromContext(t *testing.T) {
	// Nil and empty contexts fall back to the default logger.
	if logging.FromContext(nil) == nil {
		t.Error("FromContext(nil) returned nil")
	}
	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("FromContext(background) should return the default logger")
	}

	custom := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), custom)
	if logging.FromContext(ctx) != custom {
		t.Error("FromContext should return the logger attached by WithLogger")
	}
}
