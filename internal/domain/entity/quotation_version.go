package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tramo.
const (
	LegTypeTransport = "transport"
	LegTypeService   = "service"
)

// QuotationVersion snapshot versionado de la cotización. El motor opera siempre sobre la última.
type QuotationVersion struct {
	ID            string
	QuoteID       string
	TenantID      *string
	VersionNumber int
	Options       []VersionOption
	CreatedAt     time.Time
}

// VersionOption alternativa de precio dentro de una versión.
type VersionOption struct {
	ID              string
	VersionID       string
	OptionName      *string
	IsSelected      bool
	TotalAmount     decimal.NullDecimal
	Currency        *string
	TransitTimeDays *int
	Legs            []OptionLeg
}

// OptionLeg tramo ordenado de transporte o de servicio dentro de una opción.
type OptionLeg struct {
	ID                      string
	OptionID                string
	SortOrder               int
	TransportMode           string
	LegType                 *string
	ServiceOnlyCategory     *string
	CarrierID               *string
	CarrierName             *string
	OriginLocationID        *string
	DestinationLocationID   *string
	OriginLocationName      *string
	DestinationLocationName *string
	TransitTimeHours        *int
	DepartureDate           *time.Time
	ArrivalDate             *time.Time
	VoyageNumber            *string
	FlightNumber            *string
	Charges                 []LegCharge
}

// LegCharge línea de cargo dentro de un tramo. SideCode viene del join con charge_sides (buy | sell).
type LegCharge struct {
	ID           string
	LegID        string
	CategoryID   *string
	CategoryCode *string
	ChargeSideID *string
	SideCode     *string
	BasisID      *string
	Basis        *string
	CurrencyID   *string
	Currency     *string
	Quantity     decimal.NullDecimal
	UnitPrice    decimal.NullDecimal
	Amount       decimal.NullDecimal
	Note         *string
}

// VersionProjection proyección ligera del árbol de la última versión: solo identificadores.
type VersionProjection struct {
	VersionID     string
	QuoteID       string
	VersionNumber int
	TenantID      *string
	Options       []OptionProjection
}

// OptionProjection identificadores de una opción y sus tramos.
type OptionProjection struct {
	ID   string
	Legs []LegProjection
}

// LegProjection identificadores de un tramo y sus cargos.
type LegProjection struct {
	ID        string
	ChargeIDs []string
}
