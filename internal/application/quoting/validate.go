package quoting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// AnomalyValidator relee la proyección ligera de la última versión después de guardar
// y registra una anomalía cuando quedó sin opciones o sin cargos.
type AnomalyValidator struct {
	repo    repository.QuoteRepository
	guard   GuardFlag
	enabled bool
	now     func() time.Time
	metrics Metrics
	log     *logger.Logger
}

// NewAnomalyValidator construye el validador. enabled=false lo desactiva (ejecución de tests).
func NewAnomalyValidator(repo repository.QuoteRepository, guard GuardFlag, enabled bool, metrics Metrics, log *logger.Logger) *AnomalyValidator {
	if guard == nil {
		guard = StaticGuard(false)
	}
	return &AnomalyValidator{
		repo:    repo,
		guard:   guard,
		enabled: enabled,
		now:     time.Now,
		metrics: orNop(metrics),
		log:     log,
	}
}

// Validate devuelve el aviso para el usuario o nil. Los errores de lectura o de escritura
// se registran y se descartan: nunca afectan un guardado exitoso.
func (v *AnomalyValidator) Validate(ctx context.Context, quoteID, tenantID string) *entity.Anomaly {
	if !v.enabled {
		return nil
	}
	proj, err := v.repo.LoadLatestVersionProjection(ctx, quoteID)
	if err != nil {
		v.log.Warn().Err(err).Str("quote_id", quoteID).Msg("validación post-guardado omitida")
		return nil
	}
	if proj == nil {
		proj = &entity.VersionProjection{QuoteID: quoteID}
	}

	a := quote.BuildAnomaly(*proj, tenantID, v.guard.Strict(), v.now())
	if !quote.NeedsRecording(a) {
		return nil
	}

	v.metrics.AnomalyRecorded(a.Severity)
	v.log.Warn().
		Str("quote_id", a.QuoteID).
		Str("version_id", a.VersionID).
		Str("severity", a.Severity).
		Int("option_count", a.OptionCount).
		Int("charge_count", a.ChargeCount).
		Msg("cotización guardada sin opciones o sin cargos")

	if proj.VersionID == "" {
		return &a
	}
	if err := v.repo.AppendAnomaly(ctx, proj.VersionID, a); err != nil {
		v.log.Warn().Err(err).Str("version_id", proj.VersionID).Msg("no se pudo registrar la anomalía")
	}
	return &a
}

// Inspect calcula los conteos de la última versión sin registrar nada.
func (v *AnomalyValidator) Inspect(ctx context.Context, quoteID, tenantID string) (entity.Anomaly, error) {
	proj, err := v.repo.LoadLatestVersionProjection(ctx, quoteID)
	if err != nil {
		return entity.Anomaly{}, fmt.Errorf("leer proyección: %w", err)
	}
	if proj == nil {
		return entity.Anomaly{}, fmt.Errorf("%w: la cotización no tiene versiones", domain.ErrNotFound)
	}
	if proj.TenantID != nil && *proj.TenantID != tenantID {
		return entity.Anomaly{}, domain.ErrForbidden
	}
	return quote.BuildAnomaly(*proj, tenantID, v.guard.Strict(), v.now()), nil
}
