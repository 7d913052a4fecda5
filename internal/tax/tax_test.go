package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVATFromInclusive(t *testing.T) {
	assert.Equal(t, 18.00, VATFromInclusive(118, 18))
	assert.Equal(t, 0.0, VATFromInclusive(118, 0))
	assert.Equal(t, 152.54, VATFromInclusive(1000, 18))
}

func TestVATFromExclusive(t *testing.T) {
	assert.Equal(t, 18.00, VATFromExclusive(100, 18))
	assert.Equal(t, 0.0, VATFromExclusive(100, 0))
	assert.Equal(t, 180.00, VATFromExclusive(1000, 18))
}

func TestExclusiveFromInclusive(t *testing.T) {
	assert.Equal(t, 100.00, ExclusiveFromInclusive(118, 18))
	assert.Equal(t, 847.46, ExclusiveFromInclusive(1000, 18))
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		rate float64
		want Category
	}{
		{0, CategoryA},
		{18, CategoryB},
		{3, CategoryC},
		{16, CategoryC},
		{-1, CategoryC},
		{100, CategoryC},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFor(tt.rate), "rate %v", tt.rate)
	}
}

// Rounding must be identical on the inclusive and exclusive paths, otherwise
// category totals drift off the invoice total one cent per line.
func TestRoundingConsistency(t *testing.T) {
	prices := []float64{0.01, 0.99, 1.005, 33.33, 117.99, 118, 999999.99}
	for _, p := range prices {
		incl := VATFromInclusive(p, 18)
		net := ExclusiveFromInclusive(p, 18)
		assert.InDelta(t, p, net+incl, 0.011, "price %v", p)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.006))
	assert.Equal(t, 1.0, Round2(1.0049))
	assert.Equal(t, -1.01, Round2(-1.006))
	assert.Equal(t, 152.54, Round2(152.542372))
}
