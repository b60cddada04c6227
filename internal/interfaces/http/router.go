package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
)

// Roles con permiso de escritura sobre cotizaciones.
var writerRoles = []string{"admin", "comercial"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *quoting.SessionManager
	Save      *quoting.SaveUseCase
	Anomalies *quoting.AnomalyValidator
	PDF       *quoting.PDFUseCase
	Catalogs  *catalog.Resolver
	Metrics   nethttp.Handler
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(writerRoles...)

	// Catálogos
	quoteHandler := NewQuoteHandler(deps.Save, deps.Anomalies, deps.PDF, deps.Catalogs)
	protected.Get("/catalogs/:kind", quoteHandler.Catalog)

	// Cotizaciones sin sesión
	quotes := protected.Group("/quotes")
	quotes.Post("/", write, quoteHandler.Save)
	quotes.Get("/:id/anomalies", quoteHandler.Anomalies)
	quotes.Get("/:id/pdf", quoteHandler.PDF)

	// Sesiones de edición
	sessions := protected.Group("/quote-sessions")
	sessionHandler := NewQuoteSessionHandler(deps.Sessions, deps.Catalogs)
	sessions.Post("/", sessionHandler.Open)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id/form", sessionHandler.UpdateForm)
	sessions.Post("/:id/refresh", sessionHandler.Refresh)
	sessions.Post("/:id/save", write, sessionHandler.Save)
	sessions.Get("/:id/options/:kind", sessionHandler.Options)
	sessions.Delete("/:id", sessionHandler.Close)
}
