package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/infrastructure/metrics"
)

func TestPrometheus_Contadores(t *testing.T) {
	m := metrics.New()
	m.SaveResult("ok")
	m.SaveResult("ok")
	m.SaveResult("error")
	m.GuardDecision("inject")
	m.AnomalyRecorded("WARNING")
	m.CatalogHit("ports")
	m.CatalogMiss("ports")
	m.CatalogMiss("accounts")
	m.ObserveHydration("core", 40*time.Millisecond)

	n, err := testutil.GatherAndCount(m.Registry(),
		"quote_saves_total", "quote_guard_decisions_total", "quote_anomalies_total",
		"catalog_cache_hits_total", "catalog_cache_misses_total", "quote_hydration_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 8, n, "una serie por combinación de etiquetas")
}

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.New()
	m.SaveResult("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `quote_saves_total{status="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
