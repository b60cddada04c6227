// Package bootstrap arma el grafo de dependencias compartido por la API y quotectl.
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Engine casos de uso del motor de cotizaciones listos para usar.
type Engine struct {
	Pool      *pgxpool.Pool
	Metrics   *metrics.Prometheus
	Catalogs  *catalog.Resolver
	Loader    *quoting.HydrationLoader
	Save      *quoting.SaveUseCase
	Anomalies *quoting.AnomalyValidator
	Sessions  *quoting.SessionManager
	PDF       *quoting.PDFUseCase
}

// Close libera el pool.
func (e *Engine) Close() {
	if e.Pool != nil {
		e.Pool.Close()
	}
}

// New conecta a PostgreSQL y construye el motor.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Engine, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	prom := metrics.New()
	txRunner := postgres.NewTxRunner(pool)
	quoteRepo := postgres.NewQuoteRepository(pool, txRunner)
	catalogRepo := postgres.NewCatalogRepository(pool)
	oppRepo := postgres.NewOpportunityRepository(pool)
	saver := postgres.NewAtomicSaver(pool)

	resolver := catalog.NewResolver(catalogRepo, catalog.Config{
		ReferenceTTL: cfg.Catalog.ReferenceTTL,
		CRMTTL:       cfg.Catalog.CRMTTL,
		Size:         cfg.Catalog.Size,
	}, prom, log.Component("catalog"))

	cache := quoting.NewAggregateCache(cfg.Quote.CacheSize)
	loader := quoting.NewHydrationLoader(quoteRepo, cache, prom, log.Component("hydration"))
	anomalies := quoting.NewAnomalyValidator(quoteRepo, cfg.Quote.Strict, cfg.Quote.AnomalyEnabled, prom, log.Component("anomaly"))
	save := quoting.NewSaveUseCase(saver, quoteRepo, oppRepo, cache, anomalies, quote.NewFormValidator(), prom, log.Component("save"))
	sessions := quoting.NewSessionManager(loader, resolver, save, prom, log.Component("session"), cfg.Quote.SessionTTL, cfg.Quote.SessionMax)

	return &Engine{
		Pool:      pool,
		Metrics:   prom,
		Catalogs:  resolver,
		Loader:    loader,
		Save:      save,
		Anomalies: anomalies,
		Sessions:  sessions,
		PDF:       quoting.NewPDFUseCase(loader, infrapdf.NewMarotoPDFGenerator()),
	}, nil
}
