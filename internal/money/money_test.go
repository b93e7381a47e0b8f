package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/catering-service/internal/money"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole_dollars", amount: 30, want: 3000},
		{name: "cents", amount: 19.99, want: 1999},
		{name: "float_artifact", amount: 0.29, want: 29},
		{name: "half_cent_rounds_up", amount: 10.005, want: 1001},
		{name: "below_half_cent", amount: 10.004, want: 1000},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.ToCents(tt.amount))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	prices := []float64{30, 38, 49, 20, 24, 26, 28, 22, 5, 12.5, 0.01, 199.99}

	for _, p := range prices {
		cents := money.ToCents(p)
		back, _ := money.FromCents(cents).Float64()
		assert.Equal(t, p, back)
		assert.Equal(t, money.FormatAmount(p), money.Format(cents))
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$600.00", money.Format(60000))
	assert.Equal(t, "$0.00", money.Format(0))
	assert.Equal(t, "$5.50", money.Format(550))
	assert.Equal(t, "$30.00", money.FormatAmount(30))
}
