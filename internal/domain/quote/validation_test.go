package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

func TestValidate_FormularioValido(t *testing.T) {
	v := quote.NewFormValidator()
	require.NoError(t, v.Validate(newForm()))
}

func TestValidate_TituloObligatorio(t *testing.T) {
	f := newForm()
	f.Title = ""
	err := quote.NewFormValidator().Validate(f)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title")
}

func TestValidate_ReglasDeItems(t *testing.T) {
	f := newForm()
	f.Items[0].Quantity = dec("0")
	f.Items[0].DiscountPercent = dec("120")
	err := quote.NewFormValidator().Validate(f)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "items[0].quantity")
	assert.Contains(t, err.Error(), "items[0].discount_percent")
}

func TestValidate_ReglasDeCarga(t *testing.T) {
	f := newForm()
	f.Cargo = []quote.CargoForm{{TransportMode: "ocean", CargoType: "FCL", Quantity: 0, TemperatureUnit: "K"}}
	err := quote.NewFormValidator().Validate(f)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "cargo_configurations[0].quantity")
	assert.Contains(t, err.Error(), "temperature_unit")
}

func TestValidate_LlegadaAntesDeSalida(t *testing.T) {
	f := newForm()
	f.Options[0].Legs[0].DepartureDate = "2026-12-10"
	f.Options[0].Legs[0].ArrivalDate = "2026-12-01"
	err := quote.NewFormValidator().Validate(f)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "arrival_date")
}

func TestValidate_NumeroDeVuelo(t *testing.T) {
	f := newForm()
	leg := &f.Options[0].Legs[0]
	leg.TransportMode = "air"

	leg.FlightNumber = "AV 123"
	assert.NoError(t, quote.NewFormValidator().Validate(f))

	leg.FlightNumber = "lh4567a"
	assert.NoError(t, quote.NewFormValidator().Validate(f), "insensible a mayúsculas")

	leg.FlightNumber = "vuelo-123"
	assert.ErrorIs(t, quote.NewFormValidator().Validate(f), domain.ErrInvalidInput)
}

func TestValidate_MasDeUnaOpcionPrincipal(t *testing.T) {
	f := newForm()
	f.Options[1].IsPrimary = true
	assert.ErrorIs(t, quote.NewFormValidator().Validate(f), domain.ErrMultiplePrimaryOptions)

	f.Options[0].IsPrimary = false
	f.Options[1].IsPrimary = false
	assert.NoError(t, quote.NewFormValidator().Validate(f), "cero principales es válido")
}
