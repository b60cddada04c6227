// Package quoting orquesta la hidratación, la edición y el guardado del agregado de cotización.
package quoting

import (
	"context"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

// AtomicSaver envía el payload completo al procedimiento transaccional y devuelve el id canónico.
type AtomicSaver interface {
	SaveQuoteAtomic(ctx context.Context, payload quote.AtomicPayload) (string, error)
}

// CatalogSource lectura de catálogos (implementada por catalog.Resolver).
type CatalogSource interface {
	List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error)
}

// GuardFlag flag operativo que eleva la severidad de las anomalías a ERROR.
type GuardFlag interface {
	Strict() bool
}

// StaticGuard GuardFlag de valor fijo.
type StaticGuard bool

// Strict implementa GuardFlag.
func (g StaticGuard) Strict() bool { return bool(g) }

// QuotePDFGenerator genera la representación PDF de la cotización.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, core *entity.CoreAggregate, version *entity.QuotationVersion) ([]byte, error)
}

// Metrics métricas del motor. Las implementaciones deben ser seguras para uso concurrente.
type Metrics interface {
	ObserveHydration(source string, d time.Duration)
	GuardDecision(decision string)
	SaveResult(status string)
	AnomalyRecorded(severity string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveHydration(string, time.Duration) {}
func (nopMetrics) GuardDecision(string)                   {}
func (nopMetrics) SaveResult(string)                      {}
func (nopMetrics) AnomalyRecorded(string)                 {}

func orNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
