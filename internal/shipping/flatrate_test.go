package shipping_test

import (
	"testing"

	"github.com/shophub/storefront/internal/shipping"
	"github.com/stretchr/testify/assert"
)

func Test_FlatRate_FeeCents(t *testing.T) {
	// ₹500 threshold, ₹40 fee
	calc := shipping.NewFlatRate(50000, 4000)

	tests := []struct {
		name        string
		subtotal    int64
		expectedFee int64
		explanation string
	}{
		{
			name:        "below threshold",
			subtotal:    49999,
			expectedFee: 4000,
			explanation: "One cent below the threshold still pays the flat fee",
		},
		{
			name:        "exactly at threshold",
			subtotal:    50000,
			expectedFee: 0,
			explanation: "Reaching the threshold ships free",
		},
		{
			name:        "above threshold",
			subtotal:    120000,
			expectedFee: 0,
			explanation: "Large orders ship free",
		},
		{
			name:        "empty cart",
			subtotal:    0,
			expectedFee: 4000,
			explanation: "Zero subtotal is below the threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedFee, calc.FeeCents(tt.subtotal), tt.explanation)
		})
	}
}

func Test_FlatRate_ZeroThresholdAlwaysFree(t *testing.T) {
	calc := shipping.NewFlatRate(0, 4000)

	assert.Equal(t, int64(0), calc.FeeCents(0))
	assert.Equal(t, int64(0), calc.FeeCents(100))
}
