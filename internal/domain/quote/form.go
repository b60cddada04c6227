// Package quote contiene la lógica pura del agregado de cotización: el modelo de formulario,
// los normalizadores en ambas direcciones, el reducer del guard de estado sucio y la
// construcción de anomalías. No hace I/O.
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
)

// QuoteForm modelo editable de la cotización. Las claves foráneas son strings, "" cuando no hay valor.
// TotalWeight, TotalVolume, Commodity y HTSCode son resúmenes derivados del primer ítem / de todos los ítems.
type QuoteForm struct {
	Title             string `json:"title" validate:"required"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	ServiceTypeID     string `json:"service_type_id"`
	ServiceID         string `json:"service_id"`
	Incoterms         string `json:"incoterms"`
	TotalWeight       string `json:"total_weight"`
	TotalVolume       string `json:"total_volume"`
	Commodity         string `json:"commodity"`
	HTSCode           string `json:"hts_code"`
	TradeDirection    string `json:"trade_direction" validate:"omitempty,oneof=import export"`
	CarrierID         string `json:"carrier_id"`
	ConsigneeID       string `json:"consignee_id"`
	OriginPortID      string `json:"origin_port_id"`
	DestinationPortID string `json:"destination_port_id"`
	AccountID         string `json:"account_id"`
	ContactID         string `json:"contact_id"`
	OpportunityID     string `json:"opportunity_id"`
	ValidUntil        string `json:"valid_until"`
	PickupDate        string `json:"pickup_date"`
	DeliveryDeadline  string `json:"delivery_deadline"`
	VehicleType       string `json:"vehicle_type"`
	SpecialHandling   string `json:"special_handling"`
	TaxPercent        string `json:"tax_percent"`
	ShippingAmount    string `json:"shipping_amount"`
	TermsConditions   string `json:"terms_conditions"`
	Notes             string `json:"notes"`

	Items   []ItemForm   `json:"items" validate:"dive"`
	Cargo   []CargoForm  `json:"cargo_configurations" validate:"dive"`
	Options []OptionForm `json:"options" validate:"dive"`
}

// ItemForm línea de la cotización en el formulario.
type ItemForm struct {
	LineNumber        int                `json:"line_number"`
	Type              string             `json:"type" validate:"omitempty,oneof=loose container unit"`
	ContainerTypeID   string             `json:"container_type_id"`
	ContainerSizeID   string             `json:"container_size_id"`
	ProductName       string             `json:"product_name" validate:"required"`
	CommodityID       string             `json:"commodity_id"`
	AESHTSID          string             `json:"aes_hts_id"`
	Description       string             `json:"description"`
	Quantity          decimal.Decimal    `json:"quantity" validate:"gte=1"`
	UnitPrice         decimal.Decimal    `json:"unit_price" validate:"gte=0"`
	DiscountPercent   decimal.Decimal    `json:"discount_percent" validate:"gte=0,lte=100"`
	PackageCategoryID string             `json:"package_category_id"`
	PackageSizeID     string             `json:"package_size_id"`
	Attributes        ItemAttributesForm `json:"attributes"`
}

// ItemAttributesForm atributos físicos de la línea.
type ItemAttributesForm struct {
	Weight    decimal.Decimal `json:"weight"`
	Volume    decimal.Decimal `json:"volume"`
	Length    decimal.Decimal `json:"length"`
	Width     decimal.Decimal `json:"width"`
	Height    decimal.Decimal `json:"height"`
	HSCode    string          `json:"hs_code"`
	Hazmat    any             `json:"hazmat,omitempty"`
	Stackable bool            `json:"stackable"`
}

// CargoForm configuración de carga en el formulario.
type CargoForm struct {
	TransportMode           string              `json:"transport_mode" validate:"required,oneof=ocean air road rail"`
	CargoType               string              `json:"cargo_type" validate:"required,oneof=FCL LCL Breakbulk RoRo"`
	ContainerType           string              `json:"container_type"`
	ContainerSize           string              `json:"container_size"`
	ContainerTypeID         string              `json:"container_type_id"`
	ContainerSizeID         string              `json:"container_size_id"`
	Quantity                int                 `json:"quantity" validate:"gte=1"`
	UnitWeightKg            decimal.NullDecimal `json:"unit_weight_kg"`
	UnitVolumeCbm           decimal.NullDecimal `json:"unit_volume_cbm"`
	LengthCm                decimal.NullDecimal `json:"length_cm"`
	WidthCm                 decimal.NullDecimal `json:"width_cm"`
	HeightCm                decimal.NullDecimal `json:"height_cm"`
	IsHazardous             bool                `json:"is_hazardous"`
	HazardousClass          string              `json:"hazardous_class"`
	UNNumber                string              `json:"un_number"`
	IsTemperatureControlled bool                `json:"is_temperature_controlled"`
	TemperatureMin          decimal.NullDecimal `json:"temperature_min"`
	TemperatureMax          decimal.NullDecimal `json:"temperature_max"`
	TemperatureUnit         string              `json:"temperature_unit" validate:"omitempty,oneof=C F"`
	PackageCategoryID       string              `json:"package_category_id"`
	PackageSizeID           string              `json:"package_size_id"`
	Remarks                 string              `json:"remarks"`
}

// OptionForm opción de precio. IsPrimary se mapea 1:1 a is_selected.
type OptionForm struct {
	ID              identity.ID     `json:"id"`
	OptionName      string          `json:"option_name"`
	IsPrimary       bool            `json:"is_primary"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	TransitTimeDays int             `json:"transit_time_days" validate:"gte=0"`
	Legs            []LegForm       `json:"legs" validate:"dive"`
}

// LegForm tramo de una opción. Las fechas van como YYYY-MM-DD.
type LegForm struct {
	ID                      identity.ID  `json:"id"`
	SequenceNumber          int          `json:"sequence_number"`
	TransportMode           string       `json:"transport_mode"`
	LegType                 string       `json:"leg_type"`
	ServiceOnlyCategory     string       `json:"service_only_category"`
	CarrierID               string       `json:"carrier_id"`
	CarrierName             string       `json:"carrier_name"`
	OriginLocationID        string       `json:"origin_location_id"`
	DestinationLocationID   string       `json:"destination_location_id"`
	OriginLocationName      string       `json:"origin_location_name"`
	DestinationLocationName string       `json:"destination_location_name"`
	TransitTimeDays         int          `json:"transit_time_days" validate:"gte=0"`
	VoyageNumber            string       `json:"voyage_number"`
	FlightNumber            string       `json:"flight_number"`
	DepartureDate           string       `json:"departure_date"`
	ArrivalDate             string       `json:"arrival_date"`
	Charges                 []ChargeForm `json:"charges" validate:"dive"`
}

// ChargeForm cargo de un tramo. Side es el código (buy | sell) para mostrar; no viaja en el payload.
type ChargeForm struct {
	ID           identity.ID     `json:"id"`
	CategoryID   string          `json:"category_id"`
	ChargeSideID string          `json:"charge_side_id"`
	Side         string          `json:"side"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Basis        string          `json:"basis"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Note         string          `json:"note"`
}

// Catalogs datos de referencia que necesita el normalizador de carga.
type Catalogs struct {
	ServiceTypes []entity.CatalogEntry
}
