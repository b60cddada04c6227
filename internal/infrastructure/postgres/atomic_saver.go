package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

var _ quoting.AtomicSaver = (*AtomicSaver)(nil)

// saveQuoteAtomicSQL invoca el procedimiento transaccional. Todo el árbol viaja en un solo jsonb.
const saveQuoteAtomicSQL = `SELECT save_quote_atomic(p_payload => $1::jsonb)::text`

// AtomicSaver cliente del procedimiento save_quote_atomic. No reintenta ni compensa:
// el procedimiento se trata como atómico y opaco.
type AtomicSaver struct {
	q Querier
}

// NewAtomicSaver construye el cliente. Pasar pool (cada llamada es su propia transacción).
func NewAtomicSaver(q Querier) *AtomicSaver {
	return &AtomicSaver{q: q}
}

// SaveQuoteAtomic envía el payload y devuelve el id canónico de la cotización.
func (s *AtomicSaver) SaveQuoteAtomic(ctx context.Context, payload quote.AtomicPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: serializar payload: %w", domain.ErrSaveFailed, err)
	}

	var raw string
	if err := s.q.QueryRow(ctx, saveQuoteAtomicSQL, body).Scan(&raw); err != nil {
		return "", classifySaveError(err)
	}

	// El procedimiento puede devolver uuid o jsonb string: "\"…\"" tras el cast a text.
	id := strings.Trim(strings.TrimSpace(raw), `"`)
	if !identity.IsCanonical(id) {
		return "", fmt.Errorf("%w: el procedimiento devolvió un id no canónico %q", domain.ErrSaveFailed, raw)
	}
	return id, nil
}
