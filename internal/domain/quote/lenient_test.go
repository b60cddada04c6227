package quote_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

// ─── Decodificación tolerante de números ─────────────────────────────────────

func TestDecode_NumerosVaciosOInvalidosSonCero(t *testing.T) {
	body := `{
		"title": "Importación",
		"items": [{"product_name": "p", "quantity": "", "unit_price": "abc", "discount_percent": null,
			"attributes": {"weight": "", "volume": "1,5"}}],
		"options": [{"id": "temp-1", "total_amount": "", "transit_time_days": "",
			"legs": [{"transit_time_days": "x", "charges": [{"amount": "abc", "unit_price": "", "quantity": "2"}]}]}]
	}`

	var f quote.QuoteForm
	require.NoError(t, json.Unmarshal([]byte(body), &f), "un input vaciado no rechaza el formulario")

	p := quote.BuildPayload(f, "", "")
	require.Len(t, p.Items, 1)
	it := p.Items[0]
	assert.True(t, it.Quantity.IsZero())
	assert.True(t, it.UnitPrice.IsZero())
	assert.True(t, it.DiscountPercent.IsZero())
	assert.True(t, it.LineTotal.IsZero())
	assert.Nil(t, it.Attributes.Weight)
	assert.Nil(t, it.Attributes.Volume, "coma decimal no es un número válido")

	require.Len(t, p.Options, 1)
	assert.Nil(t, p.Options[0].TotalAmount)
	assert.Nil(t, p.Options[0].TransitTimeDays)
	leg := p.Options[0].Legs[0]
	assert.Nil(t, leg.TransitTimeHours)
	c := leg.Charges[0]
	assert.True(t, c.Amount.IsZero())
	assert.True(t, c.UnitPrice.IsZero())
	assert.Equal(t, "2", c.Quantity.String())
}

func TestDecode_NumerosComoTextoYLiteral(t *testing.T) {
	body := `{"items": [{"product_name": "p", "quantity": "3", "unit_price": 12.5, "discount_percent": " 10 "}],
		"cargo_configurations": [{"transport_mode": "ocean", "cargo_type": "FCL", "quantity": "2",
			"unit_weight_kg": "", "length_cm": "120.5"}]}`

	var f quote.QuoteForm
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	require.Len(t, f.Items, 1)
	assert.Equal(t, "3", f.Items[0].Quantity.String())
	assert.Equal(t, "12.5", f.Items[0].UnitPrice.String())
	assert.Equal(t, "10", f.Items[0].DiscountPercent.String())
	assert.Equal(t, "p", f.Items[0].ProductName, "los campos no numéricos se decodifican normalmente")

	require.Len(t, f.Cargo, 1)
	assert.Equal(t, 2, f.Cargo[0].Quantity)
	assert.Equal(t, "ocean", f.Cargo[0].TransportMode)
	assert.False(t, f.Cargo[0].UnitWeightKg.Valid, "vacío en un campo opcional queda en null")
	require.True(t, f.Cargo[0].LengthCm.Valid)
	assert.Equal(t, "120.5", f.Cargo[0].LengthCm.Decimal.String())
}

func TestDecode_IdentidadesSeConservan(t *testing.T) {
	body := `{"options": [{"id": "` + optionID + `", "legs": [{"id": "tmp-leg", "charges": [{"id": "` + chargeSellID + `", "amount": "5"}]}]}]}`

	var f quote.QuoteForm
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	o := f.Options[0]
	assert.True(t, o.ID.IsExisting())
	assert.Equal(t, optionID, o.ID.String())
	assert.False(t, o.Legs[0].ID.IsExisting())
	assert.Equal(t, "tmp-leg", o.Legs[0].ID.String())
	assert.True(t, o.Legs[0].Charges[0].ID.IsExisting())
	assert.Equal(t, "5", o.Legs[0].Charges[0].Amount.String())
}
