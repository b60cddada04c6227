package quote

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// AtomicPayload cuerpo único que recibe el procedimiento save_quote_atomic.
// Las claves id solo aparecen cuando refieren a filas existentes.
type AtomicPayload struct {
	Quote               QuotePayload    `json:"quote"`
	Items               []ItemPayload   `json:"items"`
	CargoConfigurations []CargoPayload  `json:"cargo_configurations"`
	Options             []OptionPayload `json:"options"`
}

// QuotePayload cabecera. Las FKs van como uuid o null, nunca "".
type QuotePayload struct {
	ID                *string         `json:"id,omitempty"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	Status            string          `json:"status"`
	ServiceTypeID     *string         `json:"service_type_id"`
	ServiceID         *string         `json:"service_id"`
	CarrierID         *string         `json:"carrier_id"`
	ConsigneeID       *string         `json:"consignee_id"`
	OriginPortID      *string         `json:"origin_port_id"`
	DestinationPortID *string         `json:"destination_port_id"`
	AccountID         *string         `json:"account_id"`
	ContactID         *string         `json:"contact_id"`
	OpportunityID     *string         `json:"opportunity_id"`
	Incoterms         *string         `json:"incoterms"`
	ValidUntil        *string         `json:"valid_until"`
	PickupDate        *string         `json:"pickup_date"`
	DeliveryDeadline  *string         `json:"delivery_deadline"`
	VehicleType       *string         `json:"vehicle_type"`
	SpecialHandling   *string         `json:"special_handling"`
	TaxPercent        decimal.Decimal `json:"tax_percent"`
	ShippingAmount    decimal.Decimal `json:"shipping_amount"`
	TermsConditions   *string         `json:"terms_conditions"`
	Notes             *string         `json:"notes"`
	TenantID          *string         `json:"tenant_id"`
	RegulatoryData    RegulatoryData  `json:"regulatory_data"`
}

// RegulatoryData datos regulatorios de la cabecera (jsonb).
type RegulatoryData struct {
	TradeDirection *string `json:"trade_direction"`
}

// ItemPayload línea con descuento y total derivados.
type ItemPayload struct {
	LineNumber        int                   `json:"line_number"`
	Type              string                `json:"type"`
	ProductName       string                `json:"product_name"`
	CommodityID       *string               `json:"commodity_id"`
	AESHTSID          *string               `json:"aes_hts_id"`
	Description       *string               `json:"description"`
	Quantity          decimal.Decimal       `json:"quantity"`
	UnitPrice         decimal.Decimal       `json:"unit_price"`
	DiscountPercent   decimal.Decimal       `json:"discount_percent"`
	DiscountAmount    decimal.Decimal       `json:"discount_amount"`
	LineTotal         decimal.Decimal       `json:"line_total"`
	WeightKg          decimal.Decimal       `json:"weight_kg"`
	VolumeCbm         decimal.Decimal       `json:"volume_cbm"`
	ContainerTypeID   *string               `json:"container_type_id"`
	ContainerSizeID   *string               `json:"container_size_id"`
	PackageCategoryID *string               `json:"package_category_id"`
	PackageSizeID     *string               `json:"package_size_id"`
	Attributes        entity.ItemAttributes `json:"attributes"`
}

// CargoPayload configuración de carga.
type CargoPayload struct {
	TransportMode           string              `json:"transport_mode"`
	CargoType               string              `json:"cargo_type"`
	ContainerType           *string             `json:"container_type"`
	ContainerSize           *string             `json:"container_size"`
	ContainerTypeID         *string             `json:"container_type_id"`
	ContainerSizeID         *string             `json:"container_size_id"`
	Quantity                int                 `json:"quantity"`
	UnitWeightKg            decimal.NullDecimal `json:"unit_weight_kg"`
	UnitVolumeCbm           decimal.NullDecimal `json:"unit_volume_cbm"`
	LengthCm                decimal.NullDecimal `json:"length_cm"`
	WidthCm                 decimal.NullDecimal `json:"width_cm"`
	HeightCm                decimal.NullDecimal `json:"height_cm"`
	IsHazardous             bool                `json:"is_hazardous"`
	HazardousClass          *string             `json:"hazardous_class"`
	UNNumber                *string             `json:"un_number"`
	IsTemperatureControlled bool                `json:"is_temperature_controlled"`
	TemperatureMin          decimal.NullDecimal `json:"temperature_min"`
	TemperatureMax          decimal.NullDecimal `json:"temperature_max"`
	TemperatureUnit         string              `json:"temperature_unit"`
	PackageCategoryID       *string             `json:"package_category_id"`
	PackageSizeID           *string             `json:"package_size_id"`
	Remarks                 *string             `json:"remarks"`
}

// OptionPayload opción con sus tramos anidados.
type OptionPayload struct {
	ID              *string          `json:"id,omitempty"`
	OptionName      *string          `json:"option_name,omitempty"`
	IsSelected      bool             `json:"is_selected"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	Currency        *string          `json:"currency,omitempty"`
	TransitTimeDays *int             `json:"transit_time_days,omitempty"`
	Legs            []LegPayload     `json:"legs"`
}

// LegPayload tramo con sus cargos anidados.
type LegPayload struct {
	ID                      *string         `json:"id,omitempty"`
	SortOrder               int             `json:"sort_order"`
	CarrierID               *string         `json:"carrier_id"`
	CarrierName             *string         `json:"carrier_name,omitempty"`
	TransportMode           string          `json:"transport_mode"`
	LegType                 string          `json:"leg_type"`
	ServiceOnlyCategory     *string         `json:"service_only_category"`
	OriginLocationID        *string         `json:"origin_location_id"`
	DestinationLocationID   *string         `json:"destination_location_id"`
	OriginLocationName      string          `json:"origin_location_name"`
	DestinationLocationName string          `json:"destination_location_name"`
	TransitTimeHours        *int            `json:"transit_time_hours"`
	DepartureDate           *string         `json:"departure_date"`
	ArrivalDate             *string         `json:"arrival_date"`
	VoyageNumber            *string         `json:"voyage_number"`
	FlightNumber            *string         `json:"flight_number"`
	Charges                 []ChargePayload `json:"charges"`
}

// ChargePayload cargo. amount, unit_price y quantity siempre presentes (0 por defecto).
type ChargePayload struct {
	ID           *string         `json:"id,omitempty"`
	CategoryID   *string         `json:"category_id,omitempty"`
	ChargeSideID *string         `json:"charge_side_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     *string         `json:"currency,omitempty"`
	Basis        *string         `json:"basis,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Note         *string         `json:"note,omitempty"`
}
