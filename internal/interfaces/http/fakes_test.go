package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	apphttp "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Cotizador-api/pkg/jwt"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	otherTenantID = "00000000-0000-0000-0000-000000000003"
	storedQuoteID = "0b9f5c1a-2d3e-4f50-8a6b-7c8d9e0f1a2b"
	savedQuoteID  = "c0ffee00-1234-4abc-8def-001122334455"
)

func sp(s string) *string { return &s }

type fakeQuoteRepo struct {
	mu       sync.Mutex
	cores    map[string]*entity.CoreAggregate
	versions map[string]*entity.QuotationVersion
	projs    map[string]*entity.VersionProjection
}

func (r *fakeQuoteRepo) LoadCore(_ context.Context, id string) (*entity.CoreAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeQuoteRepo) LoadLatestVersion(_ context.Context, id string) (*entity.QuotationVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[id], nil
}

func (r *fakeQuoteRepo) LoadLatestVersionProjection(_ context.Context, id string) (*entity.VersionProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projs[id], nil
}

func (r *fakeQuoteRepo) AppendAnomaly(context.Context, string, entity.Anomaly) error { return nil }

type fakeCatalogRepo struct{}

func (fakeCatalogRepo) List(_ context.Context, kind entity.CatalogKind, _ string) ([]entity.CatalogEntry, error) {
	switch kind {
	case entity.CatalogAccounts:
		return []entity.CatalogEntry{{ID: "acc-remote", Name: "Remota S.A."}}, nil
	case entity.CatalogServiceTypes:
		return []entity.CatalogEntry{{ID: "st-ocean", Code: "OCEAN", Name: "Ocean Freight"}}, nil
	}
	return []entity.CatalogEntry{}, nil
}

type fakeOpps struct{}

func (fakeOpps) GetByID(context.Context, string) (*entity.Opportunity, error) {
	return nil, domain.ErrNotFound
}

type fakeSaver struct{}

func (fakeSaver) SaveQuoteAtomic(_ context.Context, p quote.AtomicPayload) (string, error) {
	if p.Quote.ID != nil {
		return *p.Quote.ID, nil
	}
	return savedQuoteID, nil
}

type fakePDF struct{}

func (fakePDF) GenerateQuotePDF(context.Context, *entity.CoreAggregate, *entity.QuotationVersion) ([]byte, error) {
	return []byte("%PDF-1.3 test"), nil
}

type testEnv struct {
	app  *fiber.App
	repo *fakeQuoteRepo
}

func storedCore(id, tenant string) *entity.CoreAggregate {
	return &entity.CoreAggregate{
		Quote: entity.Quote{
			ID: id, QuoteNumber: "QUO-0007", TenantID: sp(tenant), Title: "Importación", Status: entity.QuoteStatusDraft,
			AccountID: sp("11111111-2222-4333-8444-555555555555"), AccountName: sp("ACME"),
		},
		Items: []entity.LineItem{{LineNumber: 1, ProductName: "Repuestos", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()
	repo := &fakeQuoteRepo{
		cores:    map[string]*entity.CoreAggregate{storedQuoteID: storedCore(storedQuoteID, testTenantID)},
		versions: map[string]*entity.QuotationVersion{},
		projs:    map[string]*entity.VersionProjection{},
	}
	cache := quoting.NewAggregateCache(16)
	resolver := catalog.NewResolver(fakeCatalogRepo{}, catalog.Config{ReferenceTTL: time.Hour, CRMTTL: time.Minute, Size: 16}, nil, log)
	loader := quoting.NewHydrationLoader(repo, cache, nil, log)
	validator := quoting.NewAnomalyValidator(repo, quoting.StaticGuard(false), false, nil, log)
	save := quoting.NewSaveUseCase(fakeSaver{}, repo, fakeOpps{}, cache, validator, quote.NewFormValidator(), nil, log)
	sessions := quoting.NewSessionManager(loader, resolver, save, nil, log, time.Minute, 16)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions:  sessions,
		Save:      save,
		Anomalies: validator,
		PDF:       quoting.NewPDFUseCase(loader, fakePDF{}),
		Catalogs:  resolver,
		JWTSecret: testJWTSecret,
	})
	return &testEnv{app: app, repo: repo}
}

func token(t *testing.T, tenant, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, TenantID: tenant, Role: role}, "cotizador-test", 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
