package quoting

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type aggregateEntry struct {
	core    *entity.CoreAggregate
	version *entity.QuotationVersion
	hasVer  bool
}

// AggregateCache último snapshot leído de cada cotización. Las sesiones siempre releen
// (sin staleness); el caché solo sirve a lectores secundarios (PDF) hasta que un guardado lo invalida.
type AggregateCache struct {
	entries *lru.Cache[string, aggregateEntry]
}

// NewAggregateCache crea el caché con capacidad size.
func NewAggregateCache(size int) *AggregateCache {
	if size <= 0 {
		size = 512
	}
	c, _ := lru.New[string, aggregateEntry](size)
	return &AggregateCache{entries: c}
}

// PutCore guarda el core de quoteID conservando la versión si ya estaba.
func (c *AggregateCache) PutCore(quoteID string, core *entity.CoreAggregate) {
	e, _ := c.entries.Peek(quoteID)
	e.core = core
	c.entries.Add(quoteID, e)
}

// PutVersion guarda la última versión de quoteID (nil = sin versiones).
func (c *AggregateCache) PutVersion(quoteID string, v *entity.QuotationVersion) {
	e, _ := c.entries.Peek(quoteID)
	e.version = v
	e.hasVer = true
	c.entries.Add(quoteID, e)
}

// Get devuelve el core y la versión cacheados. ok es false si falta cualquiera de los dos.
func (c *AggregateCache) Get(quoteID string) (core *entity.CoreAggregate, version *entity.QuotationVersion, ok bool) {
	e, found := c.entries.Get(quoteID)
	if !found || e.core == nil || !e.hasVer {
		return nil, nil, false
	}
	return e.core, e.version, true
}

// InvalidateQuote descarta todas las consultas cacheadas de la cotización.
func (c *AggregateCache) InvalidateQuote(quoteID string) {
	c.entries.Remove(quoteID)
}

// Len número de cotizaciones cacheadas.
func (c *AggregateCache) Len() int { return c.entries.Len() }
