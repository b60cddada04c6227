package quote_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

const (
	quoteID      = "0b9f5c1a-2d3e-4f50-8a6b-7c8d9e0f1a2b"
	tenantID     = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d"
	accountID    = "11111111-2222-4333-8444-555555555555"
	carrierID    = "22222222-3333-4444-8555-666666666666"
	optionID     = "33333333-4444-4555-8666-777777777777"
	legID        = "44444444-5555-4666-8777-888888888888"
	chargeSellID = "55555555-6666-4777-8888-999999999999"
	chargeBuyID  = "66666666-7777-4888-8999-aaaaaaaaaaaa"
	sideSellID   = "77777777-8888-4999-8aaa-bbbbbbbbbbbb"
	oceanTypeID  = "88888888-9999-4aaa-8bbb-cccccccccccc"
	airTypeID    = "99999999-aaaa-4bbb-8ccc-dddddddddddd"
)

func sp(s string) *string { return &s }

func ip(i int) *int { return &i }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func newCore() *entity.CoreAggregate {
	valid := time.Date(2026, 11, 30, 15, 4, 5, 0, time.UTC)
	w := dec("10.5")
	return &entity.CoreAggregate{
		Quote: entity.Quote{
			ID:             quoteID,
			TenantID:       sp(tenantID),
			Title:          "Importación Shanghai",
			Status:         entity.QuoteStatusDraft,
			AccountID:      sp(accountID),
			TradeDirection: sp("import"),
			ValidUntil:     &valid,
			TaxPercent:     nd("19"),
		},
		Items: []entity.LineItem{
			{
				LineNumber:  1,
				Type:        entity.ItemTypeLoose,
				ProductName: "Repuestos",
				Description: sp("Repuestos automotrices"),
				Quantity:    dec("2"),
				UnitPrice:   dec("100"),
				WeightKg:    nd("120.25"),
				VolumeCbm:   nd("1.5"),
				Attributes:  entity.ItemAttributes{HSCode: "8708.99"},
			},
			{
				LineNumber:  2,
				Type:        entity.ItemTypeLoose,
				ProductName: "Filtros",
				Quantity:    dec("1"),
				UnitPrice:   dec("50"),
				Attributes:  entity.ItemAttributes{Weight: &w},
			},
		},
		Cargo: []entity.CargoConfiguration{
			{TransportMode: "ocean", CargoType: "FCL", Quantity: 1},
		},
	}
}

func newVersion() *entity.QuotationVersion {
	return &entity.QuotationVersion{
		ID:            "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee",
		QuoteID:       quoteID,
		VersionNumber: 3,
		Options: []entity.VersionOption{
			{
				ID:         optionID,
				OptionName: sp("Marítimo directo"),
				IsSelected: true,
				Currency:   sp("USD"),
				Legs: []entity.OptionLeg{
					{
						ID:               legID,
						SortOrder:        1,
						TransportMode:    "Ocean",
						LegType:          sp(entity.LegTypeTransport),
						CarrierID:        sp(carrierID),
						TransitTimeHours: ip(25),
						Charges: []entity.LegCharge{
							{ID: chargeSellID, ChargeSideID: sp(sideSellID), SideCode: sp("sell"), Amount: nd("1500")},
							{ID: chargeBuyID, SideCode: sp("buy"), Amount: nd("900")},
						},
					},
					{
						ID:               "bbbbbbbb-cccc-4ddd-8eee-ffffffffffff",
						SortOrder:        2,
						TransportMode:    "truck",
						TransitTimeHours: ip(24),
						Charges: []entity.LegCharge{
							{SideCode: sp("Revenue"), Quantity: nd("2"), UnitPrice: nd("25")},
						},
					},
				},
			},
		},
	}
}

func serviceTypes() []entity.CatalogEntry {
	return []entity.CatalogEntry{
		{ID: airTypeID, Code: "AIR", Name: "Carga aérea"},
		{ID: oceanTypeID, Code: "FCL", Name: "Sea Freight"},
	}
}
