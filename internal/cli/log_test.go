package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/memestyle/pkg/textstyle"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestStartTiming(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))
	timer := startTiming(ctx, "topAttr")
	time.Sleep(5 * time.Millisecond)
	timer.done("wrote preview", "bytes", 42)

	out := buf.String()
	for _, want := range []string{"wrote preview", "key=topAttr", "took=", "bytes=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want it to contain %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLoadStyleLogsParseErrors(t *testing.T) {
	_, store := newTestCLI(t)
	_ = store.Set(context.Background(), "k", []byte("not json"))

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))
	s, err := loadStyle(ctx, store, "k")
	if err != nil {
		t.Fatalf("loadStyle: %v", err)
	}
	if s == nil || s.Text != "" {
		t.Error("loadStyle should return the defaults")
	}
	if out := buf.String(); !strings.Contains(out, "attribute reading failed") || !strings.Contains(out, "key=k") {
		t.Errorf("log = %q, want a warning naming the key", out)
	}
}

func TestSaveStyleLogsErrors(t *testing.T) {
	_, store := newTestCLI(t)
	store.Close()

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))
	if err := saveStyle(ctx, store, "k", textstyle.New()); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "attribute writing failed") {
		t.Errorf("log = %q, want an error entry", buf.String())
	}
}
