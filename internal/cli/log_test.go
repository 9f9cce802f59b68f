package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("computed layout") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("computed layout") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("flows cover 40,1%") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Rendered 2 charts")

	out := buf.String()
	if !strings.Contains(out, "Rendered 2 charts (") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected the default logger without a context value")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("loaded dataset", "records", 16)
	if !strings.Contains(buf.String(), "records=16") {
		t.Errorf("output = %q", buf.String())
	}
}
