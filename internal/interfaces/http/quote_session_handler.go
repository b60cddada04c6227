package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

// maxVersionsWait tope de espera de GET ...?wait=versions.
const maxVersionsWait = 10 * time.Second

// QuoteSessionHandler sesiones de edición: abrir, leer, editar, refrescar, guardar, cerrar.
type QuoteSessionHandler struct {
	sessions *quoting.SessionManager
	catalogs *catalog.Resolver
}

// NewQuoteSessionHandler construye el handler.
func NewQuoteSessionHandler(sessions *quoting.SessionManager, catalogs *catalog.Resolver) *QuoteSessionHandler {
	return &QuoteSessionHandler{sessions: sessions, catalogs: catalogs}
}

func sessionResponse(s *quoting.Session) dto.SessionResponse {
	st := s.State()
	return dto.SessionResponse{
		SessionID:       s.ID,
		QuoteID:         s.QuoteID(),
		HydratedID:      st.HydratedID,
		Dirty:           st.Dirty,
		Decision:        string(s.LastDecision()),
		VersionsArrived: s.VersionsArrived(),
		Form:            st.Values,
	}
}

// Open abre una sesión. Con quote_id retorna cuando el core está cargado.
// POST /api/quote-sessions
func (h *QuoteSessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	s, err := h.sessions.Open(c.Context(), in.QuoteID, GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(s))
}

// Get estado actual. Con ?wait=versions espera a que lleguen las opciones (con tope).
// GET /api/quote-sessions/:id
func (h *QuoteSessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	if c.Query("wait") == "versions" && s.QuoteID() != "" {
		select {
		case <-s.VersionsDone():
		case <-time.After(maxVersionsWait):
		case <-c.Context().Done():
		}
	}
	return c.JSON(sessionResponse(s))
}

// UpdateForm reemplaza los valores del formulario con la edición del usuario; 409 si hay un guardado en curso.
// PUT /api/quote-sessions/:id/form
func (h *QuoteSessionHandler) UpdateForm(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	var form quote.QuoteForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.UpdateForm(form); err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(s))
}

// Refresh vuelve a leer la cotización; si no hay ediciones el formulario no cambia.
// POST /api/quote-sessions/:id/refresh
func (h *QuoteSessionHandler) Refresh(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	id := s.QuoteID()
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la cotización aún no se ha guardado"})
	}
	if err := s.Hydrate(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(s))
}

// Save guarda el formulario de la sesión.
// POST /api/quote-sessions/:id/save
func (h *QuoteSessionHandler) Save(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.Save(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaveQuoteResponse{QuoteID: res.QuoteID, Anomaly: res.Anomaly})
}

// Options lista de selección de un catálogo con las entradas locales de la sesión primero.
// GET /api/quote-sessions/:id/options/:kind
func (h *QuoteSessionHandler) Options(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	s, err := h.sessions.Get(c.Params("id"), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	kind, ok := entity.ParseCatalogKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "catálogo desconocido"})
	}
	entries, err := h.catalogs.ListWithOverlay(c.Context(), kind, tenantID, s.Overlay())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CatalogResponse{Kind: string(kind), Entries: entries})
}

// Close descarta la sesión y sus lecturas en vuelo.
// DELETE /api/quote-sessions/:id
func (h *QuoteSessionHandler) Close(c *fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id"), GetTenantID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
