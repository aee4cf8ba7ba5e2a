package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// timing logs how long work on one style took.
type timing struct {
	logger *log.Logger
	start  time.Time
}

// startTiming returns a timing whose entries carry key.
func startTiming(ctx context.Context, key string) timing {
	return timing{logger: styleLogger(ctx, key), start: time.Now()}
}

// done logs action with the elapsed time and any extra key/value pairs.
func (t timing) done(action string, keyvals ...any) {
	elapsed := time.Since(t.start).Round(time.Millisecond)
	t.logger.Info(action, append([]any{"took", elapsed}, keyvals...)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// styleLogger is the context logger with the style key attached.
func styleLogger(ctx context.Context, key string) *log.Logger {
	return loggerFromContext(ctx).With("key", key)
}
