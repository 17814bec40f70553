package api

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// CallEvent records metadata about a single API invocation.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	RequestID string
	ErrorCode string
}

// Observer receives events about API calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes API call events through a logrus logger.
type LogObserver struct {
	log *logrus.Logger
}

// NewLogObserver creates an Observer that logs events to the given logger.
func NewLogObserver(log *logrus.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := logrus.Fields{
		"method":     event.Method,
		"path":       event.Path,
		"status":     event.Status,
		"latency_ms": event.LatencyMs,
		"request_id": event.RequestID,
	}
	if event.ErrorCode != "" {
		o.log.WithFields(fields).WithField("error", event.ErrorCode).Warn("api call failed")
		return
	}
	o.log.WithFields(fields).Info("api call")
}

// NewFileLogger builds a logrus logger writing to the given path. The TUI
// owns stdout, so client logs go to a file; an empty path discards them.
func NewFileLogger(path string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if path == "" {
		log.SetOutput(io.Discard)
		return log, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return log, nil
}
