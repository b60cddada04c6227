package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// OpportunityRepository lectura puntual de oportunidades CRM.
type OpportunityRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Opportunity, error)
}
