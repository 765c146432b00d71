package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantLevel log.Level
		wantDebug bool
	}{
		{name: "info", debug: false, wantLevel: log.InfoLevel, wantDebug: false},
		{name: "debug", debug: true, wantLevel: log.DebugLevel, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&buf, tt.debug)
			if l.GetLevel() != tt.wantLevel {
				t.Fatalf("expected level %v, got %v", tt.wantLevel, l.GetLevel())
			}

			l.Debug("hidden unless debug", "key", "etiqueta_001.jpg")
			if got := strings.Contains(buf.String(), "etiqueta_001.jpg"); got != tt.wantDebug {
				t.Fatalf("expected debug output %v, got %q", tt.wantDebug, buf.String())
			}
		})
	}
}
