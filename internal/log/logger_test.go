package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func testLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: component,
		Handler:   slog.NewTextHandler(&buf, nil),
	})
	return logger, &buf
}

func TestLoggerTagsComponent(t *testing.T) {
	logger, buf := testLogger(ComponentLedger)

	logger.Info("bill saved", FieldBillID, "42")

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentLedger) {
		t.Fatalf("component tag missing: %q", out)
	}
	if !strings.Contains(out, FieldBillID+"=42") {
		t.Fatalf("caller fields lost: %q", out)
	}
}

func TestLoggerWithComponent(t *testing.T) {
	logger, buf := testLogger(ComponentApp)

	sub := logger.WithComponent(ComponentWorker)
	if sub.Component() != ComponentWorker {
		t.Fatalf("component: got %q", sub.Component())
	}

	sub.Warn("reconcile skipped")
	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentWorker) {
		t.Fatalf("derived component not tagged: %q", buf.String())
	}
}

func TestLoggerWithPreservesComponent(t *testing.T) {
	logger, buf := testLogger(ComponentHTTP)

	logger.With(FieldRequestID, "req_1").Error("request failed")

	out := buf.String()
	if !strings.Contains(out, FieldRequestID+"=req_1") {
		t.Fatalf("With attribute lost: %q", out)
	}
	if !strings.Contains(out, FieldComponent+"="+ComponentHTTP) {
		t.Fatalf("component lost after With: %q", out)
	}
}
