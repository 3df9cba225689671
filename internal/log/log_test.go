package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(func() { Setup(Options{}) })

	tests := []struct {
		name    string
		opts    Options
		want    logrus.Level
		wantErr bool
	}{
		{"default", Options{}, logrus.InfoLevel, false},
		{"warn", Options{Level: "warn"}, logrus.WarnLevel, false},
		{"debug flag wins", Options{Level: "error", Debug: true}, logrus.DebugLevel, false},
		{"bad level", Options{Level: "chatty"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Setup(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Setup() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && logrus.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logrus.GetLevel(), tt.want)
			}
		})
	}
}

func TestSetupFile(t *testing.T) {
	t.Cleanup(func() { Setup(Options{}) })

	path := filepath.Join(t.TempDir(), "logs", "reelscout.log")
	if err := Setup(Options{File: path}); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	WithField("url", "https://example.com").Infof("resolved %d link(s)", 2)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "resolved 2 link(s)") || !strings.Contains(string(data), "url=") {
		t.Errorf("log file missing entry: %q", data)
	}
}
