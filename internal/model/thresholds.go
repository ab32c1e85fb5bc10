package model

import "fmt"

// ConfidenceThresholds controls the hybrid decision policy: results at or
// above AutoAccept skip the remote call, results between Minimum and
// AutoAccept escalate, and RemoteFallback is the floor a remote prediction
// must clear to win a disagreement. Values are configurable defaults, not
// tuned constants.
type ConfidenceThresholds struct {
	AutoAccept     float64
	RemoteFallback float64
	Minimum        float64
}

// Named threshold presets.
const (
	PresetDefault = "default"
	PresetStrict  = "strict"
	PresetLenient = "lenient"
)

// DefaultThresholds returns the default preset.
func DefaultThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.8, RemoteFallback: 0.5, Minimum: 0.3}
}

// StrictThresholds returns a preset requiring more confidence before
// trusting automatic output.
func StrictThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.9, RemoteFallback: 0.65, Minimum: 0.4}
}

// LenientThresholds returns a preset that accepts lower-confidence output.
func LenientThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{AutoAccept: 0.7, RemoteFallback: 0.4, Minimum: 0.2}
}

// ThresholdsByName resolves a preset name to its thresholds.
func ThresholdsByName(name string) (ConfidenceThresholds, error) {
	switch name {
	case PresetDefault, "":
		return DefaultThresholds(), nil
	case PresetStrict:
		return StrictThresholds(), nil
	case PresetLenient:
		return LenientThresholds(), nil
	default:
		return ConfidenceThresholds{}, fmt.Errorf("unknown thresholds preset: %s", name)
	}
}

// Validate checks the ordering invariant minimum <= remoteFallback <= autoAccept <= 1.
func (t ConfidenceThresholds) Validate() error {
	if t.Minimum < 0 || t.AutoAccept > 1.0 {
		return fmt.Errorf("thresholds out of range: %+v", t)
	}
	if t.Minimum > t.RemoteFallback || t.RemoteFallback > t.AutoAccept {
		return fmt.Errorf("thresholds must satisfy minimum <= remoteFallback <= autoAccept: %+v", t)
	}
	return nil
}
