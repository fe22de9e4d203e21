package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		expected int64
	}{
		{"usd in cents", 123.45, "usd", 12345},
		{"eur in cents", 360.0, "eur", 36000},
		{"rounds half cents", 10.005, "usd", 1001},
		{"jpy stays whole", 500, "jpy", 500},
		{"krw stays whole", 12000, "krw", 12000},
		{"zero-decimal lookup is case-insensitive", 500, "JPY", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, minorUnits(tt.amount, tt.currency))
		})
	}
}
