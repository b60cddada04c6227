package dto

import (
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

// OpenSessionRequest abre una sesión de edición. QuoteID vacío = cotización nueva.
type OpenSessionRequest struct {
	QuoteID string `json:"quote_id"`
}

// SessionResponse estado de una sesión de edición.
type SessionResponse struct {
	SessionID       string          `json:"session_id"`
	QuoteID         string          `json:"quote_id,omitempty"`
	HydratedID      string          `json:"hydrated_id,omitempty"`
	Dirty           bool            `json:"dirty"`
	Decision        string          `json:"decision,omitempty"`
	VersionsArrived bool            `json:"versions_arrived"`
	Form            quote.QuoteForm `json:"form"`
}

// SaveQuoteRequest guardado directo, sin sesión.
type SaveQuoteRequest struct {
	QuoteID string          `json:"quote_id"`
	Form    quote.QuoteForm `json:"form"`
}

// SaveQuoteResponse id canónico y aviso de anomalía si lo hubo.
type SaveQuoteResponse struct {
	QuoteID string          `json:"quote_id"`
	Anomaly *entity.Anomaly `json:"anomaly,omitempty"`
}

// CatalogResponse entradas de un catálogo (con las locales de la sesión primero, si aplica).
type CatalogResponse struct {
	Kind    string                `json:"kind"`
	Entries []entity.CatalogEntry `json:"entries"`
}
