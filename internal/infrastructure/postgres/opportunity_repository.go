package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.OpportunityRepository = (*OpportunityRepo)(nil)

// OpportunityRepo lectura puntual de oportunidades.
type OpportunityRepo struct {
	q Querier
}

func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

const selectOpportunitySQL = `
	SELECT id::text, tenant_id::text, name, account_id::text, contact_id::text, stage
	FROM opportunities
	WHERE id = $1`

// GetByID devuelve domain.ErrNotFound si no existe.
func (r *OpportunityRepo) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	var o entity.Opportunity
	err := r.q.QueryRow(ctx, selectOpportunitySQL, id).Scan(&o.ID, &o.TenantID, &o.Name, &o.AccountID, &o.ContactID, &o.Stage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return &o, nil
}
