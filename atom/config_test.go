package atom

import (
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/atom-builder/parameter"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.NucleonRadius != parameter.NucleonRadius || cfg.NucleusJumpPeriod != parameter.NucleusJumpPeriod {
		t.Error("Defaults do not match parameter constants")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ATOM_BUILDER_CONFIG_JSON", `{"nucleon_radius": 12, "outer_shell_radius": 150, "nucleus_jump_period_ms": 250}`)
	t.Setenv("ATOM_BUILDER_INNER_SHELL_RADIUS", "90")
	t.Setenv("ATOM_BUILDER_NUCLEON_RADIUS", "8")
	t.Setenv("ATOM_BUILDER_ELECTRON_ADD_MODE", "random")
	t.Setenv("ATOM_BUILDER_ANIMATION_VELOCITY", "not-a-number")

	cfg := LoadConfig()

	// Individual variables override the JSON blob
	if cfg.NucleonRadius != 8 {
		t.Errorf("NucleonRadius = %v, want 8", cfg.NucleonRadius)
	}
	if cfg.OuterShellRadius != 150 || cfg.InnerShellRadius != 90 {
		t.Errorf("Shell radii = %v/%v", cfg.InnerShellRadius, cfg.OuterShellRadius)
	}
	if cfg.ElectronAddMode != "random" {
		t.Errorf("ElectronAddMode = %q", cfg.ElectronAddMode)
	}
	if cfg.NucleusJumpPeriod != 250*time.Millisecond {
		t.Errorf("NucleusJumpPeriod = %v", cfg.NucleusJumpPeriod)
	}
	if cfg.ParticleVelocity != parameter.ParticleVelocity {
		t.Error("Malformed velocity should keep the default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Loaded config invalid: %v", err)
	}
}

func TestLoadConfigIgnoresBadJSON(t *testing.T) {
	t.Setenv("ATOM_BUILDER_CONFIG_JSON", `{nucleon_radius`)
	cfg := LoadConfig()
	if cfg.NucleonRadius != parameter.NucleonRadius {
		t.Error("Malformed JSON should leave defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		substr string
	}{
		{"zero nucleon", func(c *Config) { c.NucleonRadius = 0 }, "nucleon radius"},
		{"inverted shells", func(c *Config) { c.OuterShellRadius = c.InnerShellRadius }, "outer shell radius"},
		{"negative velocity", func(c *Config) { c.ParticleVelocity = -1 }, "velocity"},
		{"zero period", func(c *Config) { c.NucleusJumpPeriod = 0 }, "period"},
		{"bad mode", func(c *Config) { c.ElectronAddMode = "orbital" }, "add mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.substr)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InnerShellRadius = -5
	if _, err := New(r2.Vec{}, cfg); err == nil {
		t.Error("Expected New to reject invalid config")
	}
}
