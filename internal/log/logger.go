// Package log builds component-scoped slog loggers and names the
// structured field keys the rest of the module logs with, so the same
// concept always lands under the same key.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger with the component attribute attached at
// construction. Call sites log through the embedded methods; every
// line carries the component without repeating the key.
type Logger struct {
	*slog.Logger
	handler   slog.Handler
	component string
}

// Config holds logger configuration. A nil Handler means a text
// handler on stdout at the configured level.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a component-scoped logger.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	component := config.Component
	if component == "" {
		component = ComponentApp
	}
	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, component),
		handler:   handler,
		component: component,
	}
}

// WithComponent returns a logger scoped to a different component on
// the same handler. It rebuilds from the handler rather than stacking
// a second component attribute.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    slog.New(l.handler).With(FieldComponent, component),
		handler:   l.handler,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default, so
// packages logging through slog directly inherit the component.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
