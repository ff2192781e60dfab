package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"figrelay/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name  string
		level string
		json  bool
	}{
		{name: "debug text", level: "debug"},
		{name: "info json", level: "info", json: true},
		{name: "warn text", level: "warn"},
		{name: "error json", level: "error", json: true},
		{name: "unknown level falls back to info", level: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level, JSON: tt.json}
			logger, err := cfg.Configure()
			gt.NoError(t, err)
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}
