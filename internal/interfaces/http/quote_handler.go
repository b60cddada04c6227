package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/catalog"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuoteHandler operaciones sin sesión: guardado directo, anomalías, PDF y catálogos.
type QuoteHandler struct {
	save      *quoting.SaveUseCase
	anomalies *quoting.AnomalyValidator
	pdf       *quoting.PDFUseCase
	catalogs  *catalog.Resolver
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(save *quoting.SaveUseCase, anomalies *quoting.AnomalyValidator, pdf *quoting.PDFUseCase, catalogs *catalog.Resolver) *QuoteHandler {
	return &QuoteHandler{save: save, anomalies: anomalies, pdf: pdf, catalogs: catalogs}
}

// Save guarda un formulario completo. quote_id vacío crea la cotización.
// POST /api/quotes
func (h *QuoteHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.save.Save(c.Context(), quoting.SaveInput{Form: in.Form, QuoteID: in.QuoteID, TenantID: GetTenantID(c)})
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if in.QuoteID == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.SaveQuoteResponse{QuoteID: res.QuoteID, Anomaly: res.Anomaly})
}

// Anomalies conteos de la última versión, sin registrar.
// GET /api/quotes/:id/anomalies
func (h *QuoteHandler) Anomalies(c *fiber.Ctx) error {
	a, err := h.anomalies.Inspect(c.Context(), c.Params("id"), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(a)
}

// PDF descarga la cotización en PDF.
// GET /api/quotes/:id/pdf
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	b, filename, err := h.pdf.DownloadQuotePDF(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// Catalog entradas de un catálogo de referencia o CRM.
// GET /api/catalogs/:kind
func (h *QuoteHandler) Catalog(c *fiber.Ctx) error {
	kind, ok := entity.ParseCatalogKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "catálogo desconocido"})
	}
	entries, err := h.catalogs.List(c.Context(), kind, GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CatalogResponse{Kind: string(kind), Entries: entries})
}
