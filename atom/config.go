package atom

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/atom-builder/parameter"
	"github.com/lixenwraith/atom-builder/shell"
)

// Config holds the layout tunables of an atom
type Config struct {
	NucleonRadius    float64 `json:"nucleon_radius"`
	InnerShellRadius float64 `json:"inner_shell_radius"`
	OuterShellRadius float64 `json:"outer_shell_radius"`
	ElectronAddMode  string  `json:"electron_add_mode"`
	ParticleVelocity float64 `json:"particle_velocity"`

	// Instability jitter, consumed by the instability animator
	NucleusJumpMax    float64       `json:"nucleus_jump_max"`
	NucleusJumpPeriod time.Duration `json:"-"`
	NucleusJumpMs     int           `json:"nucleus_jump_period_ms,omitempty"`
}

// DefaultConfig returns the stock layout
func DefaultConfig() *Config {
	return &Config{
		NucleonRadius:     parameter.NucleonRadius,
		InnerShellRadius:  parameter.InnerShellRadius,
		OuterShellRadius:  parameter.OuterShellRadius,
		ElectronAddMode:   shell.AddProximal.String(),
		ParticleVelocity:  parameter.ParticleVelocity,
		NucleusJumpMax:    parameter.NucleusJumpMax,
		NucleusJumpPeriod: parameter.NucleusJumpPeriod,
	}
}

// LoadConfig loads configuration from environment variables
// ATOM_BUILDER_CONFIG_JSON is applied first, individual variables override it
// Malformed values are ignored and leave the default in place
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if blob := os.Getenv("ATOM_BUILDER_CONFIG_JSON"); blob != "" {
		var override Config
		if err := json.Unmarshal([]byte(blob), &override); err == nil {
			cfg.merge(&override)
		}
	}

	floatEnv := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	floatEnv("ATOM_BUILDER_NUCLEON_RADIUS", &cfg.NucleonRadius)
	floatEnv("ATOM_BUILDER_INNER_SHELL_RADIUS", &cfg.InnerShellRadius)
	floatEnv("ATOM_BUILDER_OUTER_SHELL_RADIUS", &cfg.OuterShellRadius)
	floatEnv("ATOM_BUILDER_ANIMATION_VELOCITY", &cfg.ParticleVelocity)
	floatEnv("ATOM_BUILDER_JITTER_MAX", &cfg.NucleusJumpMax)

	if mode := os.Getenv("ATOM_BUILDER_ELECTRON_ADD_MODE"); mode != "" {
		cfg.ElectronAddMode = mode
	}
	if ms := os.Getenv("ATOM_BUILDER_JITTER_PERIOD_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val > 0 {
			cfg.NucleusJumpPeriod = time.Duration(val) * time.Millisecond
		}
	}

	return cfg
}

// merge copies every non-zero field of o into c
func (c *Config) merge(o *Config) {
	if o.NucleonRadius != 0 {
		c.NucleonRadius = o.NucleonRadius
	}
	if o.InnerShellRadius != 0 {
		c.InnerShellRadius = o.InnerShellRadius
	}
	if o.OuterShellRadius != 0 {
		c.OuterShellRadius = o.OuterShellRadius
	}
	if o.ElectronAddMode != "" {
		c.ElectronAddMode = o.ElectronAddMode
	}
	if o.ParticleVelocity != 0 {
		c.ParticleVelocity = o.ParticleVelocity
	}
	if o.NucleusJumpMax != 0 {
		c.NucleusJumpMax = o.NucleusJumpMax
	}
	if o.NucleusJumpMs > 0 {
		c.NucleusJumpPeriod = time.Duration(o.NucleusJumpMs) * time.Millisecond
	}
}

// Validate rejects layouts that cannot be packed or would put electrons inside the nucleus
func (c *Config) Validate() error {
	switch {
	case c.NucleonRadius <= 0:
		return fmt.Errorf("nucleon radius must be positive, got %v", c.NucleonRadius)
	case c.InnerShellRadius <= 0:
		return fmt.Errorf("inner shell radius must be positive, got %v", c.InnerShellRadius)
	case c.OuterShellRadius <= c.InnerShellRadius:
		return fmt.Errorf("outer shell radius %v must exceed inner shell radius %v", c.OuterShellRadius, c.InnerShellRadius)
	case c.ParticleVelocity < 0:
		return fmt.Errorf("particle velocity must not be negative, got %v", c.ParticleVelocity)
	case c.NucleusJumpMax < 0:
		return fmt.Errorf("nucleus jump max must not be negative, got %v", c.NucleusJumpMax)
	case c.NucleusJumpPeriod <= 0:
		return fmt.Errorf("nucleus jump period must be positive, got %v", c.NucleusJumpPeriod)
	}
	if _, err := shell.ParseAddMode(c.ElectronAddMode); err != nil {
		return err
	}
	return nil
}
