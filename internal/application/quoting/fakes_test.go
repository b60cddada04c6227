package quoting_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const (
	tenantID      = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d"
	existingQuote = "0b9f5c1a-2d3e-4f50-8a6b-7c8d9e0f1a2b"
	newQuoteID    = "c0ffee00-1234-4abc-8def-001122334455"
	opportunityID = "0aa0aa00-1111-4222-8333-444455556666"
	oppAccountID  = "0bb0bb00-1111-4222-8333-444455556666"
	oppContactID  = "0cc0cc00-1111-4222-8333-444455556666"
)

func sp(s string) *string { return &s }

// ─── Repositorio de cotizaciones ─────────────────────────────────────────────

type fakeQuoteRepo struct {
	mu          sync.Mutex
	cores       map[string]*entity.CoreAggregate
	versions    map[string]*entity.QuotationVersion
	projections map[string]*entity.VersionProjection
	coreDelay   time.Duration
	verDelay    time.Duration
	coreErr     error
	verErr      error
	projErr     error
	appendErr   error
	appended    []entity.Anomaly
	coreCalls   int
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		cores:       map[string]*entity.CoreAggregate{},
		versions:    map[string]*entity.QuotationVersion{},
		projections: map[string]*entity.VersionProjection{},
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeQuoteRepo) LoadCore(ctx context.Context, quoteID string) (*entity.CoreAggregate, error) {
	r.mu.Lock()
	r.coreCalls++
	delay, err := r.coreDelay, r.coreErr
	r.mu.Unlock()
	if werr := wait(ctx, delay); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cores[quoteID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeQuoteRepo) LoadLatestVersion(ctx context.Context, quoteID string) (*entity.QuotationVersion, error) {
	r.mu.Lock()
	delay, err := r.verDelay, r.verErr
	r.mu.Unlock()
	if werr := wait(ctx, delay); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[quoteID], nil
}

func (r *fakeQuoteRepo) LoadLatestVersionProjection(ctx context.Context, quoteID string) (*entity.VersionProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.projErr != nil {
		return nil, r.projErr
	}
	return r.projections[quoteID], nil
}

func (r *fakeQuoteRepo) AppendAnomaly(ctx context.Context, versionID string, a entity.Anomaly) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, a)
	return nil
}

func (r *fakeQuoteRepo) anomalies() []entity.Anomaly {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Anomaly(nil), r.appended...)
}

// ─── Guardado atómico ────────────────────────────────────────────────────────

type fakeSaver struct {
	mu       sync.Mutex
	id       string
	err      error
	block    chan struct{}
	entered  chan struct{}
	payloads []quote.AtomicPayload
}

func (s *fakeSaver) SaveQuoteAtomic(ctx context.Context, p quote.AtomicPayload) (string, error) {
	if s.block != nil {
		if s.entered != nil {
			select {
			case s.entered <- struct{}{}:
			default:
			}
		}
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	if s.err != nil {
		return "", s.err
	}
	if p.Quote.ID != nil {
		return *p.Quote.ID, nil
	}
	return s.id, nil
}

func (s *fakeSaver) last() quote.AtomicPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payloads[len(s.payloads)-1]
}

// ─── CRM y catálogos ─────────────────────────────────────────────────────────

type fakeOpps struct {
	opp   *entity.Opportunity
	err   error
	calls int
}

func (f *fakeOpps) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	f.calls++
	return f.opp, f.err
}

type fakeCatalogs struct{ err error }

func (f fakeCatalogs) List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []entity.CatalogEntry{{ID: "st-ocean", Code: "OCEAN", Name: "Ocean Freight"}}, nil
}

// ─── Armado ──────────────────────────────────────────────────────────────────

type harness struct {
	repo     *fakeQuoteRepo
	saver    *fakeSaver
	opps     *fakeOpps
	cache    *quoting.AggregateCache
	loader   *quoting.HydrationLoader
	save     *quoting.SaveUseCase
	sessions *quoting.SessionManager
}

func newHarness(validatorEnabled bool, guard quoting.GuardFlag) *harness {
	log := logger.Nop()
	h := &harness{
		repo:  newFakeQuoteRepo(),
		saver: &fakeSaver{id: newQuoteID},
		opps:  &fakeOpps{},
		cache: quoting.NewAggregateCache(16),
	}
	h.loader = quoting.NewHydrationLoader(h.repo, h.cache, nil, log)
	validator := quoting.NewAnomalyValidator(h.repo, guard, validatorEnabled, nil, log)
	h.save = quoting.NewSaveUseCase(h.saver, h.repo, h.opps, h.cache, validator, quote.NewFormValidator(), nil, log)
	h.sessions = quoting.NewSessionManager(h.loader, fakeCatalogs{}, h.save, nil, log, time.Minute, 16)
	return h
}

func storedCore(id string) *entity.CoreAggregate {
	return &entity.CoreAggregate{
		Quote: entity.Quote{ID: id, TenantID: sp(tenantID), Title: "Cotización " + id[:4], Status: entity.QuoteStatusDraft, AccountID: sp(oppAccountID), AccountName: sp("ACME")},
		Items: []entity.LineItem{{LineNumber: 1, ProductName: "Repuestos", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}},
	}
}

func storedVersion(id string) *entity.QuotationVersion {
	return &entity.QuotationVersion{
		ID:            "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee",
		QuoteID:       id,
		VersionNumber: 1,
		Options: []entity.VersionOption{{
			ID:         "33333333-4444-4555-8666-777777777777",
			IsSelected: true,
			Legs: []entity.OptionLeg{{
				ID:            "44444444-5555-4666-8777-888888888888",
				SortOrder:     1,
				TransportMode: "ocean",
				Charges:       []entity.LegCharge{{ID: "55555555-6666-4777-8888-999999999999", SideCode: sp("sell"), Amount: decimal.NewNullDecimal(decimal.NewFromInt(100))}},
			}},
		}},
	}
}

func testQuoteForm() quote.QuoteForm {
	return quote.QuoteForm{
		Title: "Test Quote",
		Items: []quote.ItemForm{{ProductName: "Repuestos", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250)}},
	}
}

var errDB = errors.New("conexión rechazada")
