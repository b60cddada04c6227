package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Cotizador-api/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeRaiseException  = "P0001"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// classifySaveError envuelve un error del procedimiento de guardado en domain.ErrSaveFailed.
// Un RAISE del procedimiento conserva su mensaje; una violación de unicidad agrega domain.ErrConflict.
func classifySaveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeRaiseException:
			return fmt.Errorf("%w: %s", domain.ErrSaveFailed, pgErr.Message)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w: %s", domain.ErrSaveFailed, domain.ErrConflict, pgErr.ConstraintName)
		}
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrSaveFailed, domain.ErrConflict)
	}
	return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
}

// nullIfEmpty convierte "" en NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
