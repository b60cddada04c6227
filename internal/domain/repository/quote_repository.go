package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuoteRepository define el puerto de lectura del agregado de cotización y el log de anomalías.
type QuoteRepository interface {
	// LoadCore devuelve cabecera + ítems + carga. domain.ErrNotFound si la cotización no existe.
	LoadCore(ctx context.Context, quoteID string) (*entity.CoreAggregate, error)
	// LoadLatestVersion devuelve la última versión con opciones → tramos → cargos; nil si no hay versiones.
	LoadLatestVersion(ctx context.Context, quoteID string) (*entity.QuotationVersion, error)
	// LoadLatestVersionProjection devuelve solo los identificadores del árbol; nil si no hay versiones.
	LoadLatestVersionProjection(ctx context.Context, quoteID string) (*entity.VersionProjection, error)
	// AppendAnomaly agrega una anomalía al log de la versión.
	AppendAnomaly(ctx context.Context, versionID string, anomaly entity.Anomaly) error
}
