package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CatalogRepository lectura de catálogos de referencia, filtrados por tenant si se indica.
// Un tenantID vacío devuelve solo las entradas globales.
type CatalogRepository interface {
	List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error)
}
