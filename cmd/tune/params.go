// Package main tunes fish behavior parameters with CMA-ES so that a
// target share of dropped food gets eaten.
package main

import (
	"github.com/pthm-cable/fishtank/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "attraction_radius", Path: "fish.attraction_radius", Min: 4, Max: 20, Default: 10},
			{Name: "steer_strength", Path: "fish.steer_strength", Min: 0.005, Max: 0.1, Default: 0.02},
			{Name: "seek_gain", Path: "fish.seek_gain", Min: 0.005, Max: 0.1, Default: 0.02},
			// reaction_min stays at its configured value; the max must not drop below it
			{Name: "reaction_max", Path: "fish.reaction_max", Min: 60, Max: 600, Default: 150},
			{Name: "eat_distance", Path: "fish.eat_distance", Min: 0.8, Max: 2.5, Default: 1.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Fish.AttractionRadius = clamped[0]
	cfg.Fish.SteerStrength = clamped[1]
	cfg.Fish.SeekGain = clamped[2]
	cfg.Fish.ReactionMax = max(clamped[3], cfg.Fish.ReactionMin)
	cfg.Fish.EatDistance = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Fish.AttractionRadius,
		cfg.Fish.SteerStrength,
		cfg.Fish.SeekGain,
		cfg.Fish.ReactionMax,
		cfg.Fish.EatDistance,
	}
}
