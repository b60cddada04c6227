// Package catalog resuelve los catálogos de referencia y las listas CRM que alimentan
// los selectores del formulario de cotización.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Recorder métricas de aciertos/fallos de caché.
type Recorder interface {
	CatalogHit(kind string)
	CatalogMiss(kind string)
}

type nopRecorder struct{}

func (nopRecorder) CatalogHit(string)  {}
func (nopRecorder) CatalogMiss(string) {}

// Config tamaños y tiempos de vida del caché.
type Config struct {
	ReferenceTTL time.Duration // puertos, carriers, taxonomías: horas a un día
	CRMTTL       time.Duration // cuentas, contactos, oportunidades
	Size         int           // entradas (kind × tenant) por caché
}

// Resolver lee catálogos con caché TTL por (kind, tenant). Los fallos concurrentes
// para la misma clave comparten una sola lectura.
// Las listas devueltas son compartidas: el llamador no debe modificarlas.
type Resolver struct {
	repo    repository.CatalogRepository
	ref     *expirable.LRU[string, []entity.CatalogEntry]
	crm     *expirable.LRU[string, []entity.CatalogEntry]
	group   singleflight.Group
	metrics Recorder
	log     *logger.Logger
}

// NewResolver crea el resolver. rec puede ser nil.
func NewResolver(repo repository.CatalogRepository, cfg Config, rec Recorder, log *logger.Logger) *Resolver {
	if cfg.Size <= 0 {
		cfg.Size = 256
	}
	if cfg.ReferenceTTL <= 0 {
		cfg.ReferenceTTL = 12 * time.Hour
	}
	if cfg.CRMTTL <= 0 {
		cfg.CRMTTL = 5 * time.Minute
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Resolver{
		repo:    repo,
		ref:     expirable.NewLRU[string, []entity.CatalogEntry](cfg.Size, nil, cfg.ReferenceTTL),
		crm:     expirable.NewLRU[string, []entity.CatalogEntry](cfg.Size, nil, cfg.CRMTTL),
		metrics: rec,
		log:     log,
	}
}

func cacheKey(kind entity.CatalogKind, tenantID string) string {
	return string(kind) + "|" + tenantID
}

func (r *Resolver) cacheFor(kind entity.CatalogKind) *expirable.LRU[string, []entity.CatalogEntry] {
	if kind.IsCRM() {
		return r.crm
	}
	return r.ref
}

// List devuelve el catálogo kind visible para tenantID (globales + propios del tenant).
func (r *Resolver) List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error) {
	key := cacheKey(kind, tenantID)
	cache := r.cacheFor(kind)
	if entries, ok := cache.Get(key); ok {
		r.metrics.CatalogHit(string(kind))
		return entries, nil
	}
	r.metrics.CatalogMiss(string(kind))

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		// La lectura la comparten varios llamadores: no depende de la cancelación del primero.
		entries, err := r.repo.List(context.WithoutCancel(ctx), kind, tenantID)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []entity.CatalogEntry{}
		}
		cache.Add(key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("catálogo %s: %w", kind, err)
	}
	return v.([]entity.CatalogEntry), nil
}

// ListWithOverlay devuelve el catálogo con las entradas de la sesión antepuestas y sin duplicados.
func (r *Resolver) ListWithOverlay(ctx context.Context, kind entity.CatalogKind, tenantID string, overlay *OverlayStore) ([]entity.CatalogEntry, error) {
	base, err := r.List(ctx, kind, tenantID)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return Merge(base, nil), nil
	}
	return overlay.Apply(kind, base), nil
}

// Invalidate descarta la entrada cacheada de (kind, tenant).
func (r *Resolver) Invalidate(kind entity.CatalogKind, tenantID string) {
	r.cacheFor(kind).Remove(cacheKey(kind, tenantID))
	if r.log != nil {
		r.log.Debug().Str("kind", string(kind)).Str("tenant_id", tenantID).Msg("catálogo invalidado")
	}
}
