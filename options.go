package quanto

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ExtractOptions holds configuration for space row derivation.
type ExtractOptions struct {
	// Value selection
	allParams   bool
	extraParams []string

	// Geometry fallbacks
	useGeometry   bool
	forceGeometry bool

	// Output shaping
	rename map[string]string
	round  int // decimal places; -1 disables rounding
}

// defaultOptions returns the default derivation options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		allParams:     false,
		extraParams:   nil,
		useGeometry:   false,
		forceGeometry: false,
		rename:        nil,
		round:         -1,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		allParams:     o.allParams,
		useGeometry:   o.useGeometry,
		forceGeometry: o.forceGeometry,
		round:         o.round,
	}

	if o.extraParams != nil {
		newOpts.extraParams = make([]string, len(o.extraParams))
		copy(newOpts.extraParams, o.extraParams)
	}
	if o.rename != nil {
		newOpts.rename = make(map[string]string, len(o.rename))
		for k, v := range o.rename {
			newOpts.rename[k] = v
		}
	}

	return newOpts
}

// optionsFile is the YAML shape of an options file.
type optionsFile struct {
	AllParams     bool              `yaml:"allParams"`
	UseGeometry   bool              `yaml:"useGeometry"`
	ForceGeometry bool              `yaml:"forceGeometry"`
	ExtraParams   []string          `yaml:"extraParams"`
	Rename        map[string]string `yaml:"rename"`
	Round         *int              `yaml:"round"`
}

// LoadOptions reads derivation options from a YAML file. Unset fields keep
// their defaults.
//
// Example file:
//
//	allParams: true
//	useGeometry: true
//	round: 2
//	rename:
//	  Area: NetArea
func LoadOptions(path string) (ExtractOptions, error) {
	opts := defaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading options file: %w", err)
	}

	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("parsing options file: %w", err)
	}

	opts.allParams = file.AllParams
	opts.useGeometry = file.UseGeometry
	opts.forceGeometry = file.ForceGeometry
	opts.extraParams = file.ExtraParams
	opts.rename = file.Rename
	if file.Round != nil {
		opts.round = *file.Round
	}

	return opts, nil
}
