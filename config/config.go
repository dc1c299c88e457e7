// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// defaultSettings is the base settings file. A user settings file is merged over it.
//
//go:embed settings.yaml
var defaultSettings []byte

// HairpinConfig is settings for hairpin scoring
type HairpinConfig struct {
	// the length of a hairpin's stem
	MinStem int `mapstructure:"min-stem"`

	// the range of loop lengths between the two halves of the stem
	MinLoop int `mapstructure:"min-loop"`
	MaxLoop int `mapstructure:"max-loop"`
}

// LibraryConfig is where the RBS library's reference tables are
type LibraryConfig struct {
	// the directory with both tables
	Dir string `mapstructure:"dir"`

	// the gene table's file name
	Genes string `mapstructure:"genes"`

	// the RBS table's file name
	RBS string `mapstructure:"rbs"`

	// the column of the gene table with each gene's CDS
	CDSColumn int `mapstructure:"cds-column"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// whether to log progress to stdout
	Verbose bool `mapstructure:"verbose"`

	// random seed for codon draws
	Seed int64 `mapstructure:"seed"`

	// exclusive GC band for a window's candidates
	GCMin float64 `mapstructure:"gc-min"`
	GCMax float64 `mapstructure:"gc-max"`

	// residues committed per window
	WindowResidues int `mapstructure:"window-residues"`

	// downstream residues scored with each window
	LookaheadResidues int `mapstructure:"lookahead-residues"`

	// the number of distinct candidates sought per window
	MaxCandidates int `mapstructure:"max-candidates"`

	// trials before the GC band is dropped
	RelaxAfter int `mapstructure:"relax-after"`

	// the trial budget per window
	MaxTrials int `mapstructure:"max-trials"`

	// NCBI translation table index
	TranslationTable int `mapstructure:"translation-table"`

	// goroutines for RBS scoring
	Workers int `mapstructure:"workers"`

	// sequences that can't appear in a CDS
	Forbidden []string `mapstructure:"forbidden"`

	// Hairpin scoring settings
	Hairpin HairpinConfig `mapstructure:"hairpin"`

	// Library table locations
	Library LibraryConfig `mapstructure:"library"`
}

// New returns a new Config struct populated by Viper settings (the
// embedded settings.yaml, a user settings file, TDESIGN_ env variables
// and command line arguments)
func New() *Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	return c
}

// Load merges the default settings, and the settings file named by the
// "settings" key if there is one, into v and unmarshals the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigType("yaml")
	if err := v.MergeConfig(bytes.NewReader(defaultSettings)); err != nil {
		return nil, fmt.Errorf("failed to read default settings: %v", err)
	}

	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %v", settings, err)
		}
	}

	v.SetEnvPrefix("tdesign")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the settings can be designed with
func (c *Config) Validate() error {
	switch {
	case c.GCMin >= c.GCMax:
		return fmt.Errorf("gc-min %.2f must be less than gc-max %.2f", c.GCMin, c.GCMax)
	case c.WindowResidues < 1:
		return fmt.Errorf("window-residues must be at least 1, got %d", c.WindowResidues)
	case c.LookaheadResidues < 0:
		return fmt.Errorf("lookahead-residues can't be negative, got %d", c.LookaheadResidues)
	case c.MaxCandidates < 1:
		return fmt.Errorf("max-candidates must be at least 1, got %d", c.MaxCandidates)
	case c.MaxTrials < c.RelaxAfter:
		return fmt.Errorf("max-trials %d must be at least relax-after %d", c.MaxTrials, c.RelaxAfter)
	case c.Hairpin.MinStem < 1:
		return fmt.Errorf("hairpin min-stem must be at least 1, got %d", c.Hairpin.MinStem)
	case c.Hairpin.MaxLoop < c.Hairpin.MinLoop:
		return fmt.Errorf("hairpin max-loop %d is less than min-loop %d", c.Hairpin.MaxLoop, c.Hairpin.MinLoop)
	}
	return nil
}
