package entity

import "time"

// Severidades de anomalía.
const (
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// AnomalyTypeEmptyAggregate versión guardada sin opciones o sin cargos.
const AnomalyTypeEmptyAggregate = "SAVED_WITHOUT_OPTIONS_OR_CHARGES"

// Anomaly nota estructurada, append-only, asociada a una QuotationVersion.
// El payload incluye los conteos para poder agregarlo luego sin recorrer el árbol.
type Anomaly struct {
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	Message       string    `json:"message"`
	QuoteID       string    `json:"quote_id"`
	VersionID     string    `json:"version_id"`
	VersionNumber int       `json:"version_number"`
	TenantID      string    `json:"tenant_id,omitempty"`
	OptionCount   int       `json:"option_count"`
	ChargeCount   int       `json:"charge_count"`
	DetectedAt    time.Time `json:"detected_at"`
}
