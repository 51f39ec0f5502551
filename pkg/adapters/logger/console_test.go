package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/tempsandbox/pkg/ports"
)

func TestConsoleLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	got := buf.String()
	if strings.Contains(got, "debug 1") || strings.Contains(got, "info 2") {
		t.Errorf("messages below level were written: %q", got)
	}
	if !strings.Contains(got, "warn 3") || !strings.Contains(got, "error 4") {
		t.Errorf("expected warn and error messages, got %q", got)
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelDebug, &buf).WithComponent("sandbox")

	log.Debug("component message %s", "/tmp/x")

	if got := strings.TrimSpace(buf.String()); got != "[sandbox] component message /tmp/x" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &buf)

	log.Error("error")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
