package config

import (
	"os"
	"path/filepath"
	"testing"

	"aprs2kml/internal/telemetry"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if telemetry.Policy(cfg.Filter.Policy) != telemetry.CarryForward {
		t.Fatalf("policy=%q", cfg.Filter.Policy)
	}
	if cfg.Style.LineWidth <= 0 || len(cfg.Style.LineColor) != 8 || len(cfg.Style.PolyColor) != 8 {
		t.Fatalf("unexpected default style: %+v", cfg.Style)
	}
	if cfg.SkipHeaderLines != 0 {
		t.Fatalf("skip=%d", cfg.SkipHeaderLines)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "filter: {}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v want defaults", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeTempConfig(t, "skip_header_lines: 2\nfilter:\n  policy: drop\nstyle:\n  line_color: ff0000ff\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SkipHeaderLines != 2 {
		t.Fatalf("skip=%d", cfg.SkipHeaderLines)
	}
	if telemetry.Policy(cfg.Filter.Policy) != telemetry.Drop {
		t.Fatalf("policy=%q", cfg.Filter.Policy)
	}
	if cfg.Style.LineColor != "ff0000ff" {
		t.Fatalf("line_color=%q", cfg.Style.LineColor)
	}
	// Untouched keys keep their defaults.
	if cfg.Style.LineWidth != Default().Style.LineWidth {
		t.Fatalf("line_width=%d", cfg.Style.LineWidth)
	}
}

func TestLoad_BadPolicy(t *testing.T) {
	path := writeTempConfig(t, "filter:\n  policy: interpolate\n")
	_, err := Load(path)
	requireErrEq(t, err, `filter.policy must be "carry-forward" or "drop"`)
}

func TestLoad_BadColor(t *testing.T) {
	path := writeTempConfig(t, "style:\n  line_color: red\n")
	_, err := Load(path)
	requireErrEq(t, err, `style.line_color must be 8 hex digits (aabbggrr), got "red"`)
}

func TestLoad_BadWidth(t *testing.T) {
	path := writeTempConfig(t, "style:\n  line_width: 0\n")
	_, err := Load(path)
	requireErrEq(t, err, "style.line_width must be > 0")
}

func TestLoad_NegativeSkip(t *testing.T) {
	path := writeTempConfig(t, "skip_header_lines: -1\n")
	_, err := Load(path)
	requireErrEq(t, err, "skip_header_lines must be >= 0")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
}
