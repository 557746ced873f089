package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const sampleYAML = `
api:
  base_url: http://localhost:4000
  timeout_seconds: 15
modules:
  identity:
    otp:
      length: 6
      clear_on_resend: false
devapi:
  admins: "admin@postlearn.io, ops@postlearn.io,,"
  code_ttl_minutes: 5
instrument:
  trace_sample_ratio: 0.5
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML), map[string]any{
		"log.level": "info",
	})
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetString("api.base_url"); got != "http://localhost:4000" {
		t.Errorf("GetString(api.base_url) = %q", got)
	}
	if got := cfg.GetSecond("api.timeout_seconds"); got != 15*time.Second {
		t.Errorf("GetSecond() = %v, want 15s", got)
	}
	if got := cfg.GetMinute("devapi.code_ttl_minutes"); got != 5*time.Minute {
		t.Errorf("GetMinute() = %v, want 5m", got)
	}
	if got := cfg.GetInt("modules.identity.otp.length"); got != 6 {
		t.Errorf("GetInt() = %d, want 6", got)
	}
	if got := cfg.GetUint("modules.identity.otp.length"); got != 6 {
		t.Errorf("GetUint() = %d, want 6", got)
	}
	if cfg.GetBool("modules.identity.otp.clear_on_resend") {
		t.Error("GetBool(clear_on_resend) = true, want false")
	}
	if got := cfg.GetFloat64("instrument.trace_sample_ratio"); got != 0.5 {
		t.Errorf("GetFloat64() = %v, want 0.5", got)
	}
	if got := cfg.GetString("log.level"); got != "info" {
		t.Errorf("default log.level = %q, want info", got)
	}

	want := []string{"admin@postlearn.io", "ops@postlearn.io"}
	if got := cfg.GetArray("devapi.admins"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetArray() = %v, want %v", got, want)
	}
	if got := cfg.GetArray("missing.key"); got != nil {
		t.Errorf("GetArray(missing) = %v, want nil", got)
	}
}

func TestNewViperFromBytesRequiresType(t *testing.T) {
	if _, err := NewViperFromBytes(" ", []byte(sampleYAML), nil); err == nil {
		t.Fatal("expected error for empty config type")
	}
}

func TestNewViperEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("POSTLEARN_API_BASE_URL", "https://api.postlearn.io")

	cfg, err := NewViper(file, nil)
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}

	if got := cfg.GetString("api.base_url"); got != "https://api.postlearn.io" {
		t.Errorf("env override = %q", got)
	}
}

func TestNewViperMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
