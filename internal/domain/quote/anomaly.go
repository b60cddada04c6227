package quote

import (
	"fmt"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CountProjection cuenta opciones y cargos (sumados sobre todos los tramos) de la versión.
func CountProjection(p entity.VersionProjection) (options, charges int) {
	for _, o := range p.Options {
		for _, l := range o.Legs {
			charges += len(l.ChargeIDs)
		}
	}
	return len(p.Options), charges
}

// BuildAnomaly construye siempre el registro con los conteos; strict eleva la severidad a ERROR.
// Usar NeedsRecording para decidir si se persiste.
func BuildAnomaly(p entity.VersionProjection, tenantID string, strict bool, now time.Time) entity.Anomaly {
	options, charges := CountProjection(p)
	severity := entity.SeverityWarning
	if strict {
		severity = entity.SeverityError
	}
	tenant := tenantID
	if p.TenantID != nil && *p.TenantID != "" {
		tenant = *p.TenantID
	}
	return entity.Anomaly{
		Type:          entity.AnomalyTypeEmptyAggregate,
		Severity:      severity,
		Message:       fmt.Sprintf("versión %d guardada con %d opciones y %d cargos", p.VersionNumber, options, charges),
		QuoteID:       p.QuoteID,
		VersionID:     p.VersionID,
		VersionNumber: p.VersionNumber,
		TenantID:      tenant,
		OptionCount:   options,
		ChargeCount:   charges,
		DetectedAt:    now.UTC(),
	}
}

// NeedsRecording true cuando la versión quedó sin opciones o sin cargos.
func NeedsRecording(a entity.Anomaly) bool {
	return a.OptionCount == 0 || a.ChargeCount == 0
}
