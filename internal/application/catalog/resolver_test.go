package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type fakeCatalogRepo struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (f *fakeCatalogRepo) List(ctx context.Context, kind entity.CatalogKind, tenantID string) ([]entity.CatalogEntry, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return []entity.CatalogEntry{{ID: string(kind) + "-1", Name: "global"}, {ID: string(kind) + "-" + tenantID, TenantID: tenantID}}, nil
}

type countingRecorder struct {
	hits, misses atomic.Int32
}

func (c *countingRecorder) CatalogHit(string)  { c.hits.Add(1) }
func (c *countingRecorder) CatalogMiss(string) { c.misses.Add(1) }

func TestResolver_CacheaPorKindYTenant(t *testing.T) {
	repo := &fakeCatalogRepo{}
	rec := &countingRecorder{}
	r := catalog.NewResolver(repo, catalog.Config{}, rec, nil)
	ctx := context.Background()

	first, err := r.List(ctx, entity.CatalogPorts, "t1")
	require.NoError(t, err)
	second, err := r.List(ctx, entity.CatalogPorts, "t1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, repo.calls.Load())

	_, err = r.List(ctx, entity.CatalogPorts, "t2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, repo.calls.Load(), "otro tenant es otra clave")
	assert.EqualValues(t, 1, rec.hits.Load())
	assert.EqualValues(t, 2, rec.misses.Load())
}

func TestResolver_LecturasConcurrentesSeComparten(t *testing.T) {
	repo := &fakeCatalogRepo{release: make(chan struct{})}
	r := catalog.NewResolver(repo, catalog.Config{}, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := r.List(context.Background(), entity.CatalogCarriers, "t1")
			assert.NoError(t, err)
			assert.Len(t, entries, 2)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()
	assert.EqualValues(t, 1, repo.calls.Load())
}

func TestResolver_ErrorNoSeCachea(t *testing.T) {
	repo := &fakeCatalogRepo{err: errors.New("db caída")}
	r := catalog.NewResolver(repo, catalog.Config{}, nil, nil)

	_, err := r.List(context.Background(), entity.CatalogCurrencies, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currencies")

	repo.err = nil
	entries, err := r.List(context.Background(), entity.CatalogCurrencies, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.EqualValues(t, 2, repo.calls.Load())
}

func TestResolver_CRMExpiraAntes(t *testing.T) {
	repo := &fakeCatalogRepo{}
	r := catalog.NewResolver(repo, catalog.Config{ReferenceTTL: time.Hour, CRMTTL: 20 * time.Millisecond}, nil, nil)
	ctx := context.Background()

	_, _ = r.List(ctx, entity.CatalogAccounts, "t1")
	_, _ = r.List(ctx, entity.CatalogPorts, "t1")
	time.Sleep(60 * time.Millisecond)
	_, _ = r.List(ctx, entity.CatalogAccounts, "t1")
	_, _ = r.List(ctx, entity.CatalogPorts, "t1")

	assert.EqualValues(t, 3, repo.calls.Load(), "solo las cuentas se releen")
}

func TestResolver_Invalidate(t *testing.T) {
	repo := &fakeCatalogRepo{}
	r := catalog.NewResolver(repo, catalog.Config{}, nil, nil)
	ctx := context.Background()

	_, _ = r.List(ctx, entity.CatalogServiceTypes, "t1")
	r.Invalidate(entity.CatalogServiceTypes, "t1")
	_, _ = r.List(ctx, entity.CatalogServiceTypes, "t1")
	assert.EqualValues(t, 2, repo.calls.Load())
}

func TestResolver_ListWithOverlay(t *testing.T) {
	r := catalog.NewResolver(&fakeCatalogRepo{}, catalog.Config{}, nil, nil)
	store := catalog.NewOverlayStore()
	store.Add(entity.CatalogAccounts, entity.CatalogEntry{ID: "acc-quote", Name: "Cuenta de la cotización"})

	entries, err := r.ListWithOverlay(context.Background(), entity.CatalogAccounts, "t1", store)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "acc-quote", entries[0].ID)
}
