package quote_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

func newForm() quote.QuoteForm {
	return quote.QuoteForm{
		Title:          "Test Quote",
		AccountID:      accountID,
		ContactID:      "",
		CarrierID:      "carrier-temp-1",
		TaxPercent:     "19",
		ShippingAmount: "abc",
		ValidUntil:     "2026-12-01",
		Items: []quote.ItemForm{
			{ProductName: "Repuestos", Quantity: dec("2"), UnitPrice: dec("100"), DiscountPercent: dec("10"), CommodityID: "tmp"},
		},
		Options: []quote.OptionForm{
			{
				ID:        identity.Parse("opt-1730000000000"),
				IsPrimary: true,
				Legs: []quote.LegForm{
					{
						ID:                  identity.Parse(legID),
						TransportMode:       "ocean",
						LegType:             "service",
						ServiceOnlyCategory: "customs",
						CarrierID:           carrierID,
						TransitTimeDays:     3,
						Charges: []quote.ChargeForm{
							{
								ID:           identity.Parse("charge-tmp"),
								CategoryID:   "FREIGHT",
								ChargeSideID: sideSellID,
								Amount:       dec("1500.50"),
								Currency:     "EUR",
								Basis:        "per_container",
								UnitPrice:    dec("750.25"),
								Quantity:     dec("2"),
								Note:         "incluye BAF",
							},
							{ID: identity.Parse(chargeSellID), Amount: dec("10")},
						},
					},
				},
			},
			{ID: identity.Parse(optionID), IsPrimary: false},
		},
	}
}

// ─── Identificadores ─────────────────────────────────────────────────────────

func TestBuildPayload_IdentificadoresTemporalesSeOmiten(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)

	assert.Nil(t, p.Quote.ID, "cotización nueva sin id")
	assert.Nil(t, p.Options[0].ID, "opción temporal")
	require.NotNil(t, p.Options[0].Legs[0].ID, "tramo existente dentro de opción nueva")
	assert.Equal(t, legID, *p.Options[0].Legs[0].ID)
	assert.Nil(t, p.Options[0].Legs[0].Charges[0].ID)
	require.NotNil(t, p.Options[0].Legs[0].Charges[1].ID)
	assert.Equal(t, chargeSellID, *p.Options[0].Legs[0].Charges[1].ID)
	require.NotNil(t, p.Options[1].ID)
	assert.Equal(t, optionID, *p.Options[1].ID)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	_, hasID := tree["quote"].(map[string]any)["id"]
	assert.False(t, hasID, "la clave id no viaja para filas nuevas")
	opt0 := tree["options"].([]any)[0].(map[string]any)
	_, hasID = opt0["id"]
	assert.False(t, hasID)
}

func TestBuildPayload_ClavesForaneasSaneadas(t *testing.T) {
	p := quote.BuildPayload(newForm(), quoteID, tenantID)

	require.NotNil(t, p.Quote.ID)
	assert.Equal(t, quoteID, *p.Quote.ID)
	require.NotNil(t, p.Quote.AccountID)
	assert.Equal(t, accountID, *p.Quote.AccountID)
	assert.Nil(t, p.Quote.ContactID, "\"\" → null")
	assert.Nil(t, p.Quote.CarrierID, "temporal → null")
	assert.Nil(t, p.Items[0].CommodityID)
	require.NotNil(t, p.Quote.TenantID)

	raw, err := json.Marshal(p.Quote)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"contact_id":null`)
	assert.NotContains(t, string(raw), `""`)
}

// ─── Montos ──────────────────────────────────────────────────────────────────

func TestBuildPayload_DescuentoYTotalDeLinea(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)

	require.Len(t, p.Items, 1)
	it := p.Items[0]
	assert.Equal(t, 1, it.LineNumber)
	assert.True(t, it.DiscountAmount.Equal(dec("20")), "2 × 100 con 10 de descuento")
	assert.True(t, it.LineTotal.Equal(dec("180")))
}

func TestBuildPayload_CoercionNumerica(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)
	assert.True(t, p.Quote.TaxPercent.Equal(dec("19")))
	assert.True(t, p.Quote.ShippingAmount.IsZero(), "texto inválido → 0")
}

func TestLineAmounts_SinDescuento(t *testing.T) {
	discount, total := quote.LineAmounts(dec("3"), dec("12.5"), dec("0"))
	assert.True(t, discount.IsZero())
	assert.True(t, total.Equal(dec("37.5")))
}

// ─── Opciones, tramos y cargos ───────────────────────────────────────────────

func TestBuildPayload_PrincipalSinInversion(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)
	assert.True(t, p.Options[0].IsSelected)
	assert.False(t, p.Options[1].IsSelected)
}

func TestBuildPayload_CargosPasanSinCambios(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)
	c := p.Options[0].Legs[0].Charges[0]

	assert.True(t, c.Amount.Equal(dec("1500.50")))
	assert.Equal(t, "EUR", *c.Currency)
	assert.Equal(t, "FREIGHT", *c.CategoryID)
	assert.Equal(t, sideSellID, *c.ChargeSideID)
	assert.Equal(t, "per_container", *c.Basis)
	assert.True(t, c.UnitPrice.Equal(dec("750.25")))
	assert.True(t, c.Quantity.Equal(dec("2")))
	assert.Equal(t, "incluye BAF", *c.Note)
}

func TestBuildPayload_DiscriminadoresDeTramo(t *testing.T) {
	p := quote.BuildPayload(newForm(), "", tenantID)
	leg := p.Options[0].Legs[0]

	assert.Equal(t, "service", leg.LegType)
	require.NotNil(t, leg.ServiceOnlyCategory)
	assert.Equal(t, "customs", *leg.ServiceOnlyCategory)
	assert.Equal(t, 1, leg.SortOrder)
	require.NotNil(t, leg.TransitTimeHours)
	assert.Equal(t, 72, *leg.TransitTimeHours)
}

func TestBuildPayload_Defaults(t *testing.T) {
	f := newForm()
	f.Options[0].Legs[0].LegType = ""
	p := quote.BuildPayload(f, "", tenantID)

	assert.Equal(t, "transport", p.Options[0].Legs[0].LegType)
	assert.Equal(t, "USD", *p.Options[0].Currency)
	assert.Equal(t, "draft", p.Quote.Status)
	assert.Nil(t, p.Options[1].TotalAmount)
	assert.Nil(t, p.Options[1].TransitTimeDays)
}

func TestBuildPayload_IdaYVueltaConservaDiscriminadores(t *testing.T) {
	f := quote.ToForm(newCore(), newVersion(), quote.Catalogs{})
	f.Options[0].Legs[1].LegType = "service"
	f.Options[0].Legs[1].ServiceOnlyCategory = "warehousing"

	p := quote.BuildPayload(f, quoteID, tenantID)
	leg := p.Options[0].Legs[1]
	assert.Equal(t, "service", leg.LegType)
	assert.Equal(t, "warehousing", *leg.ServiceOnlyCategory)
	assert.True(t, p.Options[0].IsSelected)
	assert.Equal(t, optionID, *p.Options[0].ID)
	assert.Equal(t, "2026-11-30", *p.Quote.ValidUntil)
}
