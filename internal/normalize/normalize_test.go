package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLines []string
		wantLower string
	}{
		{
			name:      "empty input yields no lines",
			raw:       "",
			wantLines: nil,
			wantLower: "",
		},
		{
			name:      "whitespace only yields no lines",
			raw:       "   \n\t\n  ",
			wantLines: nil,
			wantLower: "   \n\t\n  ",
		},
		{
			name:      "trims and drops blank lines",
			raw:       "  WALMART  \n\nTotal 8.62\n",
			wantLines: []string{"WALMART", "Total 8.62"},
			wantLower: "  walmart  \n\ntotal 8.62\n",
		},
		{
			name:      "collapses interior whitespace",
			raw:       "Milk    Whole\t4.99",
			wantLines: []string{"Milk Whole 4.99"},
			wantLower: "milk    whole\t4.99",
		},
		{
			name:      "strips OCR artifacts",
			raw:       "Milk | 4.99\\",
			wantLines: []string{"Milk 4.99"},
			wantLower: "milk | 4.99\\",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.raw)
			assert.Equal(t, tt.wantLines, got.Lines)
			assert.Equal(t, tt.wantLower, got.Lower)
		})
	}
}
