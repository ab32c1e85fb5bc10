package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdPresets(t *testing.T) {
	for _, preset := range []ConfidenceThresholds{
		DefaultThresholds(), StrictThresholds(), LenientThresholds(),
	} {
		assert.NoError(t, preset.Validate())
	}

	assert.Equal(t, ConfidenceThresholds{AutoAccept: 0.8, RemoteFallback: 0.5, Minimum: 0.3}, DefaultThresholds())
	assert.Greater(t, StrictThresholds().AutoAccept, DefaultThresholds().AutoAccept)
	assert.Less(t, LenientThresholds().AutoAccept, DefaultThresholds().AutoAccept)
}

func TestThresholdsByName(t *testing.T) {
	tests := []struct {
		name string
		want ConfidenceThresholds
	}{
		{PresetDefault, DefaultThresholds()},
		{"", DefaultThresholds()},
		{PresetStrict, StrictThresholds()},
		{PresetLenient, LenientThresholds()},
	}
	for _, tt := range tests {
		got, err := ThresholdsByName(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ThresholdsByName("aggressive")
	assert.Error(t, err)
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      ConfidenceThresholds
		wantErr bool
	}{
		{"ordered", ConfidenceThresholds{AutoAccept: 0.8, RemoteFallback: 0.5, Minimum: 0.3}, false},
		{"equal values", ConfidenceThresholds{AutoAccept: 0.5, RemoteFallback: 0.5, Minimum: 0.5}, false},
		{"minimum above fallback", ConfidenceThresholds{AutoAccept: 0.8, RemoteFallback: 0.3, Minimum: 0.5}, true},
		{"fallback above auto accept", ConfidenceThresholds{AutoAccept: 0.4, RemoteFallback: 0.5, Minimum: 0.3}, true},
		{"negative minimum", ConfidenceThresholds{AutoAccept: 0.8, RemoteFallback: 0.5, Minimum: -0.1}, true},
		{"auto accept above one", ConfidenceThresholds{AutoAccept: 1.1, RemoteFallback: 0.5, Minimum: 0.3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
