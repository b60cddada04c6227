package quoting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// CoreResult resultado de la consulta core.
type CoreResult struct {
	Core *entity.CoreAggregate
	Err  error
}

// VersionsResult resultado de la consulta de versiones. Version nil sin error = no hay versiones.
type VersionsResult struct {
	Version *entity.QuotationVersion
	Err     error
}

// Hydration par de consultas en vuelo. Cada canal entrega exactamente un valor,
// salvo que el contexto se cancele antes.
type Hydration struct {
	Core     <-chan CoreResult
	Versions <-chan VersionsResult
}

// HydrationLoader lanza las lecturas core y versions de forma independiente.
type HydrationLoader struct {
	repo    repository.QuoteRepository
	cache   *AggregateCache
	metrics Metrics
	log     *logger.Logger
}

// NewHydrationLoader construye el loader.
func NewHydrationLoader(repo repository.QuoteRepository, cache *AggregateCache, metrics Metrics, log *logger.Logger) *HydrationLoader {
	return &HydrationLoader{repo: repo, cache: cache, metrics: orNop(metrics), log: log}
}

// Start dispara ambas lecturas, cada una en su goroutine, sin unirlas: una versión lenta
// no retrasa el core. Siempre relee del almacenamiento.
func (l *HydrationLoader) Start(ctx context.Context, quoteID string) *Hydration {
	coreCh := make(chan CoreResult, 1)
	versionsCh := make(chan VersionsResult, 1)

	go func() {
		start := time.Now()
		core, err := l.repo.LoadCore(ctx, quoteID)
		l.metrics.ObserveHydration("core", time.Since(start))
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				err = fmt.Errorf("%w: %w", domain.ErrHydrationFailed, err)
			}
			l.log.Error().Err(err).Str("quote_id", quoteID).Msg("hidratación core fallida")
		} else if ctx.Err() == nil {
			l.cache.PutCore(quoteID, core)
		}
		coreCh <- CoreResult{Core: core, Err: err}
	}()

	go func() {
		start := time.Now()
		version, err := l.repo.LoadLatestVersion(ctx, quoteID)
		l.metrics.ObserveHydration("versions", time.Since(start))
		if err != nil {
			l.log.Warn().Err(err).Str("quote_id", quoteID).Msg("versiones no disponibles; se continúa sin opciones")
			version = nil
		} else if ctx.Err() == nil {
			l.cache.PutVersion(quoteID, version)
		}
		versionsCh <- VersionsResult{Version: version, Err: err}
	}()

	return &Hydration{Core: coreCh, Versions: versionsCh}
}

// LoadCached devuelve el agregado desde el caché o lo lee (ambas consultas) y lo cachea.
// Un fallo de versiones degrada a version nil y no se cachea.
func (l *HydrationLoader) LoadCached(ctx context.Context, quoteID string) (*entity.CoreAggregate, *entity.QuotationVersion, error) {
	if core, version, ok := l.cache.Get(quoteID); ok {
		return core, version, nil
	}
	h := l.Start(ctx, quoteID)
	var core CoreResult
	select {
	case core = <-h.Core:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	if core.Err != nil {
		return nil, nil, core.Err
	}
	var versions VersionsResult
	select {
	case versions = <-h.Versions:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	// Sin versiones legibles se sigue sin opciones, igual que en la sesión; Start ya lo registró.
	return core.Core, versions.Version, nil
}
