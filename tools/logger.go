package tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/logging"
)

// Logger is the subset of *logging.Logger the service writes through, so
// that local runs and tests can log without a Cloud Logging client.
type Logger interface {
	Log(e logging.Entry)
}

// Initializes a Cloud Logging logger. The returned client must be closed on
// shutdown to flush buffered entries.
func NewCloudLogger(ctx context.Context, projectId, logName string) (*logging.Logger, *logging.Client, error) {
	client, err := logging.NewClient(ctx, projectId)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logging client: %v", err)
	}

	return client.Logger(logName), client, nil
}

// SlogLogger writes Cloud Logging entries as JSON lines through log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(w io.Writer) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) Log(e logging.Entry) {
	attrs := make([]any, 0, 2*len(e.Labels)+2)
	attrs = append(attrs, "severity", e.Severity.String())
	for k, v := range e.Labels {
		attrs = append(attrs, k, v)
	}

	l.logger.Log(context.Background(), slogLevel(e.Severity), fmt.Sprint(e.Payload), attrs...)
}

func slogLevel(s logging.Severity) slog.Level {
	switch {
	case s >= logging.Error:
		return slog.LevelError
	case s >= logging.Warning:
		return slog.LevelWarn
	case s >= logging.Info:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// DiscardLogger drops every entry.
type DiscardLogger struct{}

func (DiscardLogger) Log(logging.Entry) {}
