// Package metrics expone contadores e histogramas Prometheus del motor de cotizaciones.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
)

var (
	_ quoting.Metrics  = (*Prometheus)(nil)
	_ catalog.Recorder = (*Prometheus)(nil)
)

// Prometheus implementa quoting.Metrics y catalog.Recorder sobre un registry propio.
type Prometheus struct {
	reg *prometheus.Registry

	hydration      *prometheus.HistogramVec
	guardDecisions *prometheus.CounterVec
	saves          *prometheus.CounterVec
	anomalies      *prometheus.CounterVec
	catalogHits    *prometheus.CounterVec
	catalogMisses  *prometheus.CounterVec
}

// New registra las métricas en un registry nuevo que incluye las del proceso y el runtime de Go.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Prometheus{
		reg: reg,
		hydration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quote_hydration_duration_seconds",
			Help:    "Tiempo de carga del agregado por fuente (core, versions)",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		guardDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_guard_decisions_total",
			Help: "Decisiones del guardia de estado sucio",
		}, []string{"decision"}),
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_saves_total",
			Help: "Guardados atómicos por resultado",
		}, []string{"status"}),
		anomalies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_anomalies_total",
			Help: "Anomalías post-guardado registradas por severidad",
		}, []string{"severity"}),
		catalogHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Aciertos del caché de catálogos",
		}, []string{"kind"}),
		catalogMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Fallos del caché de catálogos",
		}, []string{"kind"}),
	}
}

func (p *Prometheus) ObserveHydration(source string, d time.Duration) {
	p.hydration.WithLabelValues(source).Observe(d.Seconds())
}

func (p *Prometheus) GuardDecision(decision string) {
	p.guardDecisions.WithLabelValues(decision).Inc()
}

func (p *Prometheus) SaveResult(status string) {
	p.saves.WithLabelValues(status).Inc()
}

func (p *Prometheus) AnomalyRecorded(severity string) {
	p.anomalies.WithLabelValues(severity).Inc()
}

func (p *Prometheus) CatalogHit(kind string) {
	p.catalogHits.WithLabelValues(kind).Inc()
}

func (p *Prometheus) CatalogMiss(kind string) {
	p.catalogMisses.WithLabelValues(kind).Inc()
}

// Registry para tests y para exponer en otro handler.
func (p *Prometheus) Registry() *prometheus.Registry { return p.reg }

// Handler endpoint /metrics en formato de exposición Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}
