package catalog

import (
	"sync"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// OverlayStore listas locales (cuentas, contactos, oportunidades, servicios) que se anteponen
// al catálogo para que una entidad referenciada por la cotización sea seleccionable aunque
// el catálogo aún no la incluya. Se pasa explícitamente a la sesión y a los selectores.
type OverlayStore struct {
	mu    sync.RWMutex
	lists map[entity.CatalogKind][]entity.CatalogEntry
}

// NewOverlayStore crea un store vacío.
func NewOverlayStore() *OverlayStore {
	return &OverlayStore{lists: make(map[entity.CatalogKind][]entity.CatalogEntry)}
}

// Add antepone entradas a la lista de kind. Una entrada con el mismo id reemplaza a la anterior.
// Las entradas sin id se ignoran.
func (s *OverlayStore) Add(kind entity.CatalogKind, entries ...entity.CatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fresh []entity.CatalogEntry
	for _, e := range entries {
		if e.ID != "" {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) == 0 {
		return
	}
	s.lists[kind] = Merge(s.lists[kind], fresh)
}

// List copia de la lista local de kind.
func (s *OverlayStore) List(kind entity.CatalogKind) []entity.CatalogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.CatalogEntry, len(s.lists[kind]))
	copy(out, s.lists[kind])
	return out
}

// Apply combina base con la lista local de kind.
func (s *OverlayStore) Apply(kind entity.CatalogKind, base []entity.CatalogEntry) []entity.CatalogEntry {
	return Merge(base, s.List(kind))
}

// Merge devuelve overlay seguido de base, único por id: gana la primera aparición.
// Nunca modifica sus argumentos.
func Merge(base, overlay []entity.CatalogEntry) []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, 0, len(base)+len(overlay))
	seen := make(map[string]struct{}, len(base)+len(overlay))
	for _, list := range [][]entity.CatalogEntry{overlay, base} {
		for _, e := range list {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
