// Package config loads the timing harness settings from defaults, an
// optional YAML file, ECBASICS_ environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ECBASICS"

var ErrHelp = pflag.ErrHelp

// Timing configures cmd/ectiming.
type Timing struct {
	Curve   string `mapstructure:"curve" validate:"oneof=secp256k1 p256"`
	Samples int    `mapstructure:"samples" validate:"min=1,max=100000"`
	Warmup  int    `mapstructure:"warmup" validate:"min=0"`
	// Bits is the exact bit length of every sampled scalar.
	Bits    int      `mapstructure:"bits" validate:"min=8,max=256"`
	Weights []int    `mapstructure:"weights" validate:"min=2,dive,min=1"`
	Methods []string `mapstructure:"methods" validate:"min=1,dive,oneof=double-and-add ladder"`

	Log Log `mapstructure:"log"`
}

type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("curve", "secp256k1")
	v.SetDefault("samples", 200)
	v.SetDefault("warmup", 10)
	v.SetDefault("bits", 256)
	v.SetDefault("weights", []int{16, 128, 240})
	v.SetDefault("methods", []string{"double-and-add", "ladder"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("curve", "secp256k1", "curve to time (secp256k1, p256)")
	fs.Int("samples", 200, "timed multiplications per method and weight")
	fs.Int("warmup", 10, "untimed multiplications before each series")
	fs.Int("bits", 256, "bit length of the sampled scalars")
	fs.IntSlice("weights", []int{16, 128, 240}, "Hamming weights to sample")
	fs.StringSlice("methods", []string{"double-and-add", "ladder"}, "scalar multiplication methods")
	fs.String("log.level", "info", "log level")
	fs.String("log.format", "console", "log format (console, json)")
	return fs
}

// Load resolves the configuration for a command invoked with args
// (without the program name).
func Load(name string, args []string) (*Timing, error) {
	fs := flagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// Only flags given on the command line override file and environment.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("config: %w", bindErr)
	}

	var cfg Timing
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and the cross-field constraints.
func Validate(cfg *Timing) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	for _, w := range cfg.Weights {
		if w > cfg.Bits {
			return fmt.Errorf("config: validation failed: weight %d exceeds %d bits", w, cfg.Bits)
		}
	}
	return nil
}
