package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la cotización.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Quote representa la cabecera de una cotización tal como se guarda en la tabla quotes.
// Los punteros reflejan columnas NULL; la normalización de carga los convierte a "".
type Quote struct {
	ID                string
	QuoteNumber       string
	TenantID          *string
	Title             string
	Description       *string
	Status            string
	ServiceTypeID     *string
	ServiceID         *string
	CarrierID         *string
	ConsigneeID       *string
	OriginPortID      *string
	DestinationPortID *string
	AccountID         *string
	ContactID         *string
	OpportunityID     *string
	Incoterms         *string
	TradeDirection    *string // regulatory_data->>'trade_direction': import | export
	ValidUntil        *time.Time
	PickupDate        *time.Time
	DeliveryDeadline  *time.Time
	VehicleType       *string
	SpecialHandling   *string
	TaxPercent        decimal.NullDecimal
	ShippingAmount    decimal.NullDecimal
	TermsConditions   *string
	Notes             *string

	// Nombres resueltos por join, para inyectar en las listas de selección.
	AccountName     *string
	ContactName     *string
	OpportunityName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoreAggregate es la parte "core" del agregado: cabecera + ítems + configuraciones de carga.
type CoreAggregate struct {
	Quote Quote
	Items []LineItem
	Cargo []CargoConfiguration
}
