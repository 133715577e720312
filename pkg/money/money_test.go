package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$ 12.345,50", Format(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "$ 0,00", Format(decimal.Zero))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "12.000", Quantity(12000))
}
