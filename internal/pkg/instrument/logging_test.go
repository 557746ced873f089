package instrument

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level string) *slog.Logger {
	return slog.New(newHandler(&Config{
		ServiceName: "postlearn",
		MaskFields:  []string{"otp", " accessToken ", ""},
		LogLevel:    level,
		LogWriter:   buf,
	}, nil))
}

func TestLoggingMasksConfiguredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "info")

	ctx := SetCorrelationID(context.Background(), "cid-123")
	logger.InfoContext(ctx, "otp issued",
		"otp", "otp-value-xyz",
		"email", "admin@postlearn.io",
		"body", `{"accessToken":"eyJhbGciOi","message":"ok"}`,
		slog.Group("tokens", slog.String("accesstoken", "secret")),
	)

	out := buf.String()
	for _, leaked := range []string{"otp-value-xyz", "eyJhbGciOi", "secret"} {
		if strings.Contains(out, leaked) {
			t.Errorf("log output leaked %q: %s", leaked, out)
		}
	}
	for _, want := range []string{`"otp":"***"`, `"_cID":"cid-123"`, `"service":"postlearn"`, `"severity":"INFO"`, "admin@postlearn.io"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestLoggingLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestLoggingWithAttrsKeepsServiceAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "debug").With("component", "tui")

	logger.Debug("key pressed")

	out := buf.String()
	if !strings.Contains(out, `"component":"tui"`) || !strings.Contains(out, `"service":"postlearn"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("empty context cID = %q", got)
	}

	ctx := SetCorrelationID(context.Background(), "abc")
	if got := GetCorrelationID(ctx); got != "abc" {
		t.Errorf("GetCorrelationID() = %q, want abc", got)
	}
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{ServiceName: "postlearn", LogWriter: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()

	slog.Info("configured")
	if !strings.Contains(buf.String(), "configured") {
		t.Errorf("default logger not pointed at LogWriter: %q", buf.String())
	}

	if err := ins.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
