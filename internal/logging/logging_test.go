package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantErr   bool
	}{
		{"", false, true, false},
		{"debug", true, true, false},
		{"warn", false, false, false},
		{"loud", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closer, err := New(Options{Level: tt.level, Prefix: "test"}, &buf)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error for an unknown level")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			defer closer.Close()

			logger.Debug("debug line")
			logger.Info("info line")
			out := buf.String()
			if strings.Contains(out, "debug line") != tt.wantDebug {
				t.Errorf("debug output = %v, expected %v", strings.Contains(out, "debug line"), tt.wantDebug)
			}
			if strings.Contains(out, "info line") != tt.wantInfo {
				t.Errorf("info output = %v, expected %v", strings.Contains(out, "info line"), tt.wantInfo)
			}
			if tt.wantInfo && !strings.Contains(out, "test") {
				t.Error("prefix missing from output")
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")
	logger, closer, err := New(Options{File: path}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("written to file", "stage", 3)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "written to file") || !strings.Contains(string(data), "stage=3") {
		t.Errorf("log file = %q", data)
	}
}

func TestNilFallbackDiscards(t *testing.T) {
	logger, closer, err := New(Options{}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer closer.Close()
	logger.Info("nowhere")

	if With(nil, "x") == nil {
		t.Error("With(nil) should return a usable logger")
	}
}
