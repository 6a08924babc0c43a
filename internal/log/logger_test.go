package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewAttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentWorker,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("hello")

	line := buf.String()
	if !strings.Contains(line, FieldComponent+"="+ComponentWorker) {
		t.Errorf("log line missing component attribute: %q", line)
	}
	if logger.Component() != ComponentWorker {
		t.Errorf("Component() = %q", logger.Component())
	}
}

func TestNewDefaultsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})
	logger.Info("hello")
	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentApp) {
		t.Errorf("default component missing: %q", buf.String())
	}
}

func TestWithComponentRescopes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentApp,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.WithComponent(ComponentWorker).Info("hello")

	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentWorker) {
		t.Errorf("rescoped component missing: %q", buf.String())
	}
	if strings.Contains(buf.String(), FieldComponent+"="+ComponentApp) {
		t.Errorf("stale component attribute remains: %q", buf.String())
	}
}
