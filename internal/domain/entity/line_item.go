package entity

import "github.com/shopspring/decimal"

// Tipos de ítem unificado de carga.
const (
	ItemTypeLoose     = "loose"
	ItemTypeContainer = "container"
	ItemTypeUnit      = "unit"
)

// LineItem representa una línea de la cotización (quote_items). El orden es significativo.
type LineItem struct {
	ID                string
	QuoteID           string
	LineNumber        int
	Type              string
	ProductName       string
	CommodityID       *string
	AESHTSID          *string
	Description       *string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	DiscountPercent   decimal.Decimal
	WeightKg          decimal.NullDecimal
	VolumeCbm         decimal.NullDecimal
	ContainerTypeID   *string
	ContainerSizeID   *string
	PackageCategoryID *string
	PackageSizeID     *string
	Attributes        ItemAttributes
}

// ItemAttributes atributos físicos guardados en quote_items.attributes (jsonb).
type ItemAttributes struct {
	Weight    *decimal.Decimal `json:"weight,omitempty"`
	Volume    *decimal.Decimal `json:"volume,omitempty"`
	Length    *decimal.Decimal `json:"length,omitempty"`
	Width     *decimal.Decimal `json:"width,omitempty"`
	Height    *decimal.Decimal `json:"height,omitempty"`
	HSCode    string           `json:"hs_code,omitempty"`
	Hazmat    any              `json:"hazmat,omitempty"`
	Stackable *bool            `json:"stackable,omitempty"`
}
