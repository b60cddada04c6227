package quoting

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// PDFUseCase genera el PDF de una cotización a partir del último agregado leído.
type PDFUseCase struct {
	loader    *HydrationLoader
	generator QuotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(loader *HydrationLoader, generator QuotePDFGenerator) *PDFUseCase {
	return &PDFUseCase{loader: loader, generator: generator}
}

// DownloadQuotePDF retorna el PDF y un nombre de archivo.
// domain.ErrForbidden si la cotización es de otro tenant.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, tenantID, quoteID string) (pdfBytes []byte, filename string, err error) {
	core, version, err := uc.loader.LoadCached(ctx, quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: cargar cotización: %w", err)
	}
	if core.Quote.TenantID != nil && *core.Quote.TenantID != tenantID {
		return nil, "", domain.ErrForbidden
	}

	pdfBytes, err = uc.generator.GenerateQuotePDF(ctx, core, version)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	number := core.Quote.QuoteNumber
	if number == "" {
		number = quoteID
	}
	return pdfBytes, fmt.Sprintf("cotizacion_%s.pdf", number), nil
}
