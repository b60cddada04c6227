package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "0,00", money(decimal.Zero))
	assert.Equal(t, "25.000,00", money(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234.567,50", money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-980,10", money(decimal.RequireFromString("-980.1")))
}

func TestPrimaryOption(t *testing.T) {
	_, ok := primaryOption(nil)
	assert.False(t, ok)

	o, ok := primaryOption([]quote.OptionForm{{OptionName: "A"}, {OptionName: "B", IsPrimary: true}})
	assert.True(t, ok)
	assert.Equal(t, "B", o.OptionName)

	o, _ = primaryOption([]quote.OptionForm{{OptionName: "A"}, {OptionName: "B"}})
	assert.Equal(t, "A", o.OptionName, "sin principal se usa la primera")
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, parseDecimal("19").Equal(decimal.NewFromInt(19)))
	assert.True(t, parseDecimal("").IsZero())
	assert.True(t, parseDecimal("abc").IsZero())
}
