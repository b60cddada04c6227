package quoting

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Session estado de edición de una cotización. Es el único escritor del formulario:
// cada llegada de datos se aplica bajo mu a través de quote.Reduce.
type Session struct {
	ID       string
	TenantID string

	loader   *HydrationLoader
	catalogs CatalogSource
	saver    *SaveUseCase
	overlay  *catalog.OverlayStore
	metrics  Metrics
	log      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	quoteID         string
	state           quote.FormState
	core            *entity.CoreAggregate
	version         *entity.QuotationVersion
	versionsArrived bool
	types           []entity.CatalogEntry
	gen             uint64
	lastDecision    quote.Decision
	versionsDone    chan struct{}

	saving atomic.Bool
}

func newSession(tenantID string, loader *HydrationLoader, catalogs CatalogSource, saver *SaveUseCase, metrics Metrics, log *logger.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	close(done)
	return &Session{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		loader:       loader,
		catalogs:     catalogs,
		saver:        saver,
		overlay:      catalog.NewOverlayStore(),
		metrics:      orNop(metrics),
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
		versionsDone: done,
	}
}

// Hydrate carga quoteID en la sesión. Retorna cuando llega el core (hidratación completa);
// las versiones se aplican después, en segundo plano, sin bloquear.
// Al refrescar la misma cotización se conservan los últimos snapshots hasta que lleguen los nuevos.
// Un error del core no modifica el formulario. Si ctx se cancela antes, el core se aplica igual
// cuando llegue.
func (s *Session) Hydrate(ctx context.Context, quoteID string) error {
	if s.ctx.Err() != nil {
		return domain.ErrSessionNotFound
	}
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if quoteID != s.quoteID {
		s.quoteID = quoteID
		s.core = nil
		s.version = nil
		s.versionsArrived = false
	}
	done := make(chan struct{})
	s.versionsDone = done
	s.mu.Unlock()

	h := s.loader.Start(s.ctx, quoteID)
	coreDone := make(chan error, 1)
	go func() { coreDone <- s.awaitCore(gen, h) }()
	go s.awaitVersions(gen, h, done)

	select {
	case err := <-coreDone:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return domain.ErrSessionNotFound
	}
}

func (s *Session) awaitCore(gen uint64, h *Hydration) error {
	var res CoreResult
	select {
	case res = <-h.Core:
	case <-s.ctx.Done():
		return domain.ErrSessionNotFound
	}
	if res.Err != nil {
		return res.Err
	}
	if t := res.Core.Quote.TenantID; t != nil && *t != s.TenantID {
		return domain.ErrForbidden
	}
	s.applyCore(gen, res.Core)
	return nil
}

func (s *Session) awaitVersions(gen uint64, h *Hydration, done chan struct{}) {
	defer close(done)
	var res VersionsResult
	select {
	case res = <-h.Versions:
	case <-s.ctx.Done():
		return
	}

	types, err := s.catalogs.List(s.ctx, entity.CatalogServiceTypes, s.TenantID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", s.ID).Msg("tipos de servicio no disponibles; sin inferencia")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.ctx.Err() != nil {
		return
	}
	s.version = res.Version
	s.versionsArrived = true
	s.types = types
	s.reduceLocked()
}

func (s *Session) applyCore(gen uint64, core *entity.CoreAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.ctx.Err() != nil {
		return
	}
	s.core = core
	s.injectLinkedEntities(core)
	s.reduceLocked()
}

func (s *Session) reduceLocked() {
	next, decision := quote.Reduce(s.state, quote.Snapshot{
		QuoteID:         s.quoteID,
		Core:            s.core,
		Version:         s.version,
		VersionsArrived: s.versionsArrived,
		Catalogs:        quote.Catalogs{ServiceTypes: s.types},
	})
	s.state = next
	s.lastDecision = decision
	s.metrics.GuardDecision(string(decision))
	s.log.Debug().
		Str("session_id", s.ID).
		Str("quote_id", s.quoteID).
		Str("decision", string(decision)).
		Bool("dirty", next.Dirty).
		Msg("snapshot aplicado")
}

// injectLinkedEntities agrega la cuenta, el contacto y la oportunidad de la cotización a las listas locales.
func (s *Session) injectLinkedEntities(core *entity.CoreAggregate) {
	q := core.Quote
	if q.AccountID != nil {
		s.overlay.Add(entity.CatalogAccounts, entity.CatalogEntry{ID: *q.AccountID, Name: deref(q.AccountName)})
	}
	if q.ContactID != nil {
		e := entity.CatalogEntry{ID: *q.ContactID, Name: deref(q.ContactName)}
		if q.AccountID != nil {
			e.ParentID = *q.AccountID
		}
		s.overlay.Add(entity.CatalogContacts, e)
	}
	if q.OpportunityID != nil {
		s.overlay.Add(entity.CatalogOpportunities, entity.CatalogEntry{ID: *q.OpportunityID, Name: deref(q.OpportunityName)})
	}
}

// UpdateForm reemplaza los valores con la edición del usuario y marca el formulario como sucio.
// Mientras hay un guardado en vuelo la edición se rechaza con domain.ErrSaveInProgress: las filas
// nuevas de ese guardado solo reciben su id al recargar un formulario limpio.
func (s *Session) UpdateForm(values quote.QuoteForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving.Load() {
		return domain.ErrSaveInProgress
	}
	s.state.Values = values
	s.state.Dirty = true
	return nil
}

// State copia del estado actual del formulario.
func (s *Session) State() quote.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// QuoteID cotización cargada ("" para una cotización nueva aún no guardada).
func (s *Session) QuoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quoteID
}

// LastDecision última decisión del guard.
func (s *Session) LastDecision() quote.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDecision
}

// VersionsArrived true cuando la lectura de versiones de la cotización actual ya terminó.
func (s *Session) VersionsArrived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versionsArrived
}

// VersionsDone se cierra cuando las versiones de la última hidratación se aplicaron o descartaron.
func (s *Session) VersionsDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versionsDone
}

// Overlay listas locales de la sesión.
func (s *Session) Overlay() *catalog.OverlayStore { return s.overlay }

// Save guarda el formulario actual. Solo un guardado en vuelo por sesión y sin ediciones
// concurrentes. Si falla, el formulario y el flag sucio quedan intactos. Si tiene éxito se
// rehidrata con el id canónico y se espera a las versiones, de modo que opciones, tramos y
// cargos recién insertados quedan en el formulario con su id.
func (s *Session) Save(ctx context.Context) (*SaveResult, error) {
	s.mu.Lock()
	if !s.saving.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	values := s.state.Values
	quoteID := s.quoteID
	s.mu.Unlock()
	defer s.saving.Store(false)

	res, err := s.saver.Save(ctx, SaveInput{Form: values, QuoteID: quoteID, TenantID: s.TenantID})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state.Dirty = false
	if s.state.HydratedID == quoteID {
		// Una cotización nueva pasa a estar hidratada con su id canónico.
		s.state.HydratedID = res.QuoteID
	}
	s.mu.Unlock()

	if err := s.Hydrate(ctx, res.QuoteID); err != nil {
		s.log.Warn().Err(err).Str("quote_id", res.QuoteID).Msg("cotización guardada pero no se pudo recargar")
		return res, nil
	}
	select {
	case <-s.VersionsDone():
	case <-ctx.Done():
	}
	return res, nil
}

// Close cancela las lecturas en vuelo; los resultados tardíos se descartan.
func (s *Session) Close() {
	s.cancel()
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
