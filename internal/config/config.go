// Package config resolves matryoshka settings from defaults, an optional
// config file, MATRYOSHKA_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys
const (
	KeyDepth    = "depth"
	KeyKeepTemp = "keep_temp"
	KeyLevel    = "level"
	KeyOutput   = "output"
	KeyVerbose  = "verbose"
	KeyQuiet    = "quiet"
)

// EnvPrefix namespaces environment overrides, e.g. MATRYOSHKA_DEPTH.
const EnvPrefix = "MATRYOSHKA"

var ErrVerboseQuiet = errors.New("verbose and quiet are mutually exclusive")

// Mode selects how progress is presented.
type Mode int

const (
	ModeProgress Mode = iota
	ModeVerbose
	ModeQuiet
)

// Config is the resolved configuration of an archive run.
type Config struct {
	Depth    int
	KeepTemp bool
	Level    int
	Output   string
	Mode     Mode
}

// Options converts c into archiver options. Level 0 stores entries
// uncompressed.
func (c Config) Options() nest.Options {
	level := c.Level
	if level == 0 {
		level = nest.LevelStore
	}
	return nest.Options{
		MaxDepth:        c.Depth,
		KeepTemporaries: c.KeepTemp,
		Level:           level,
		OutputDir:       c.Output,
	}
}

// New returns a viper instance carrying the defaults and environment
// binding. It reads cfgFile when set, otherwise config.{toml,yaml,json}
// under $HOME/.config/matryoshka if present.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyDepth, nest.Unlimited)
	v.SetDefault(KeyKeepTemp, false)
	v.SetDefault(KeyLevel, nest.DefaultLevel)
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyQuiet, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return v, nil
	}
	v.AddConfigPath(filepath.Join(home, ".config", "matryoshka"))
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// BindFlags binds each flag in fs whose name maps to a config key, so an
// explicitly set flag overrides file and environment values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyDepth, KeyKeepTemp, KeyLevel, KeyOutput, KeyVerbose, KeyQuiet} {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Resolve reads the effective configuration out of v.
func Resolve(v *viper.Viper) (Config, error) {
	c := Config{
		Depth:    v.GetInt(KeyDepth),
		KeepTemp: v.GetBool(KeyKeepTemp),
		Level:    v.GetInt(KeyLevel),
		Output:   v.GetString(KeyOutput),
	}
	if c.Depth < nest.Unlimited {
		return Config{}, fmt.Errorf("%s=%d: %w", KeyDepth, c.Depth, nest.ErrInvalidDepth)
	}
	if c.Level < -1 || c.Level > 9 {
		return Config{}, fmt.Errorf("%s=%d: %w", KeyLevel, c.Level, nest.ErrInvalidLevel)
	}
	verbose, quiet := v.GetBool(KeyVerbose), v.GetBool(KeyQuiet)
	switch {
	case verbose && quiet:
		return Config{}, ErrVerboseQuiet
	case verbose:
		c.Mode = ModeVerbose
	case quiet:
		c.Mode = ModeQuiet
	}
	return c, nil
}
