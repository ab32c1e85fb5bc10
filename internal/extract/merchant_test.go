package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchant(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "uppercase store name on top line",
			lines: []string{"WALMART SUPERCENTER", "Date: 12/15/2023", "Milk 4.99"},
			want:  "WALMART SUPERCENTER",
		},
		{
			name:  "brand-like mixed case name",
			lines: []string{"Twin Pines Market", "123 Main St", "Total 5.00"},
			want:  "Twin Pines Market",
		},
		{
			name:  "boilerplate first line loses to real name",
			lines: []string{"*** RECEIPT ***", "Corner Cafe", "Total 3.50"},
			want:  "Corner Cafe",
		},
		{
			name:  "no line clears the threshold",
			lines: []string{"12345", "678.90", "0.64"},
			want:  "",
		},
		{
			name:  "empty input",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merchant(tt.lines)
			assert.Equal(t, tt.want, got.Value)
			if tt.want == "" {
				assert.Zero(t, got.Confidence)
			} else {
				assert.Greater(t, got.Confidence, 0.5)
				assert.LessOrEqual(t, got.Confidence, 1.0)
			}
		})
	}
}

func TestHasMixedCaseToken(t *testing.T) {
	assert.True(t, hasMixedCaseToken("McDonald's"))
	assert.True(t, hasMixedCaseToken("Corner Cafe"))
	assert.False(t, hasMixedCaseToken("WALMART"))
	assert.False(t, hasMixedCaseToken("12345"))
}
