package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aprs2kml/internal/telemetry"
)

type Config struct {
	SkipHeaderLines int          `yaml:"skip_header_lines"`
	Filter          FilterConfig `yaml:"filter"`
	Style           StyleConfig  `yaml:"style"`
}

type FilterConfig struct {
	Policy string `yaml:"policy"`
}

// StyleConfig holds the KML style constants. Colors are KML aabbggrr hex.
type StyleConfig struct {
	LineColor string `yaml:"line_color"`
	LineWidth int    `yaml:"line_width"`
	PolyColor string `yaml:"poly_color"`
}

// Default is the configuration used when no config file is given: orange
// track, carry-forward filtering, no header lines.
func Default() Config {
	return Config{
		Filter: FilterConfig{Policy: string(telemetry.CarryForward)},
		Style: StyleConfig{
			LineColor: "ff00a5ff",
			LineWidth: 4,
			PolyColor: "7f00a5ff",
		},
	}
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch telemetry.Policy(c.Filter.Policy) {
	case telemetry.CarryForward, telemetry.Drop:
	default:
		return fmt.Errorf("filter.policy must be %q or %q", telemetry.CarryForward, telemetry.Drop)
	}
	if c.SkipHeaderLines < 0 {
		return fmt.Errorf("skip_header_lines must be >= 0")
	}
	if c.Style.LineWidth <= 0 {
		return fmt.Errorf("style.line_width must be > 0")
	}
	if err := checkColor(c.Style.LineColor, "style.line_color"); err != nil {
		return err
	}
	if err := checkColor(c.Style.PolyColor, "style.poly_color"); err != nil {
		return err
	}
	return nil
}

func checkColor(v, field string) error {
	b, err := hex.DecodeString(v)
	if err != nil || len(b) != 4 {
		return fmt.Errorf("%s must be 8 hex digits (aabbggrr), got %q", field, v)
	}
	return nil
}
