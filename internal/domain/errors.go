package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrHydrationFailed        = errors.New("no se pudo cargar la cotización")
	ErrSaveFailed             = errors.New("no se pudo guardar la cotización")
	ErrSaveInProgress         = errors.New("ya hay un guardado en curso")
	ErrMultiplePrimaryOptions = errors.New("más de una opción marcada como principal")
	ErrSessionNotFound        = errors.New("sesión de edición no encontrada")
)
