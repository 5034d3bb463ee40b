package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, "secp256k1", cfg.Curve)
	assert.Equal(t, 200, cfg.Samples)
	assert.Equal(t, 256, cfg.Bits)
	assert.Equal(t, []int{16, 128, 240}, cfg.Weights)
	assert.Equal(t, []string{"double-and-add", "ladder"}, cfg.Methods)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("test", []string{
		"--curve=p256", "--samples=5", "--bits=64",
		"--weights=2,60", "--methods=ladder", "--log.format=json",
	})
	require.NoError(t, err)
	assert.Equal(t, "p256", cfg.Curve)
	assert.Equal(t, 5, cfg.Samples)
	assert.Equal(t, 64, cfg.Bits)
	assert.Equal(t, []int{2, 60}, cfg.Weights)
	assert.Equal(t, []string{"ladder"}, cfg.Methods)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve: p256\nsamples: 7\nlog:\n  level: debug\n"), 0o600))

	t.Setenv("ECBASICS_SAMPLES", "9")

	cfg, err := Load("test", []string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "p256", cfg.Curve)
	assert.Equal(t, 9, cfg.Samples, "environment overrides the file")
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg, err = Load("test", []string{"--config", path, "--samples", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Samples, "flags override the environment")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("test", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load("test", []string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)

	_, err = Load("test", []string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Timing {
		return &Timing{
			Curve: "secp256k1", Samples: 10, Bits: 32,
			Weights: []int{4, 28}, Methods: []string{"ladder"},
			Log: Log{Level: "info", Format: "console"},
		}
	}
	require.NoError(t, Validate(base()))

	tests := map[string]func(c *Timing){
		"curve":         func(c *Timing) { c.Curve = "ed25519" },
		"samples":       func(c *Timing) { c.Samples = 0 },
		"bits":          func(c *Timing) { c.Bits = 4 },
		"one weight":    func(c *Timing) { c.Weights = []int{4} },
		"zero weight":   func(c *Timing) { c.Weights = []int{0, 4} },
		"weight > bits": func(c *Timing) { c.Weights = []int{4, 33} },
		"method":        func(c *Timing) { c.Methods = []string{"window"} },
		"no method":     func(c *Timing) { c.Methods = nil },
		"log level":     func(c *Timing) { c.Log.Level = "loud" },
		"log format":    func(c *Timing) { c.Log.Format = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			err := Validate(c)
			assert.Error(t, err)
		})
	}

	var verrs validator.ValidationErrors
	c := base()
	c.Curve = "x"
	assert.ErrorAs(t, Validate(c), &verrs)
}
