package quoting

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// SessionManager registro de sesiones de edición con expiración por inactividad.
// Una sesión expulsada o expirada se cierra.
type SessionManager struct {
	sessions *expirable.LRU[string, *Session]
	loader   *HydrationLoader
	catalogs CatalogSource
	saver    *SaveUseCase
	metrics  Metrics
	log      *logger.Logger
}

// NewSessionManager construye el registro. ttl es el tiempo de inactividad permitido.
func NewSessionManager(
	loader *HydrationLoader,
	catalogs CatalogSource,
	saver *SaveUseCase,
	metrics Metrics,
	log *logger.Logger,
	ttl time.Duration,
	size int,
) *SessionManager {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	onEvict := func(_ string, s *Session) { s.Close() }
	return &SessionManager{
		sessions: expirable.NewLRU[string, *Session](size, onEvict, ttl),
		loader:   loader,
		catalogs: catalogs,
		saver:    saver,
		metrics:  orNop(metrics),
		log:      log,
	}
}

// Open crea una sesión. Con quoteID vacío la sesión arranca con un formulario en blanco;
// en otro caso retorna cuando el core está hidratado.
func (m *SessionManager) Open(ctx context.Context, quoteID, tenantID string) (*Session, error) {
	s := newSession(tenantID, m.loader, m.catalogs, m.saver, m.metrics, m.log)
	if quoteID != "" {
		if err := s.Hydrate(ctx, quoteID); err != nil {
			s.Close()
			return nil, err
		}
	}
	m.sessions.Add(s.ID, s)
	m.log.Info().Str("session_id", s.ID).Str("quote_id", quoteID).Str("tenant_id", tenantID).Msg("sesión de edición abierta")
	return s, nil
}

// Get devuelve la sesión si existe y pertenece al tenant; renueva su expiración.
func (m *SessionManager) Get(id, tenantID string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok || s.TenantID != tenantID {
		return nil, domain.ErrSessionNotFound
	}
	m.sessions.Add(id, s)
	return s, nil
}

// Close cierra y elimina la sesión.
func (m *SessionManager) Close(id, tenantID string) error {
	if _, err := m.Get(id, tenantID); err != nil {
		return err
	}
	m.sessions.Remove(id)
	return nil
}

// Len número de sesiones abiertas.
func (m *SessionManager) Len() int { return m.sessions.Len() }
