// Package pdf genera la representación imprimible de una cotización de carga.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + cliente      │  N° Cotización + vigencia   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMBARQUE: Incoterm / dirección / mercancía / peso-volumen  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA ÍTEMS: Cant | Producto | P.Unit | Desc% | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OPCIÓN PRINCIPAL: tramos + cargos de venta                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / Envío / TOTAL               │
//	│  FOOTER: QR con el id + términos                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
)

var _ quoting.QuotePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var hundred = decimal.NewFromInt(100)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quoting.QuotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateQuotePDF genera el PDF y devuelve sus bytes. version puede ser nil (cotización sin opciones).
func (g *MarotoPDFGenerator) GenerateQuotePDF(
	_ context.Context,
	agg *entity.CoreAggregate,
	version *entity.QuotationVersion,
) ([]byte, error) {
	if agg == nil {
		return nil, fmt.Errorf("pdf: agregado vacío")
	}
	form := quote.ToForm(agg, version, quote.Catalogs{})

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+nonEmpty(agg.Quote.QuoteNumber, agg.Quote.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(agg.Quote, form))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shipmentRow(form))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Cant.", "Producto / descripción", "P. Unit.", "Desc. %", "Total"))
	rows, subtotal := itemRows(form.Items)
	m.AddRows(rows...)

	if opt, ok := primaryOption(form.Options); ok {
		m.AddRows(line.NewRow(3))
		m.AddRows(optionRows(opt)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(subtotal, form))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(agg.Quote, form)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(q entity.Quote, f quote.QuoteForm) core.Row {
	client := nonEmpty(deref(q.AccountName), "—")
	if c := deref(q.ContactName); c != "" {
		client += " / " + c
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(f.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+client, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(q.QuoteNumber, "borrador"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Válida hasta: "+nonEmpty(f.ValidUntil, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func shipmentRow(f quote.QuoteForm) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMBARQUE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Incoterm: %s   |   Dirección: %s   |   Mercancía: %s",
				nonEmpty(f.Incoterms, "—"),
				nonEmpty(f.TradeDirection, "—"),
				nonEmpty(f.Commodity, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Peso total: %s kg   |   Volumen total: %s m³   |   HTS: %s",
				nonEmpty(f.TotalWeight, "—"),
				nonEmpty(f.TotalVolume, "—"),
				nonEmpty(f.HTSCode, "—"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow(labels ...string) core.Row {
	sizes := []int{1, 5, 2, 1, 3}
	aligns := []align.Type{align.Center, align.Left, align.Right, align.Center, align.Right}
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i],
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

// itemRows una fila por ítem; devuelve además la suma de totales de línea.
func itemRows(items []quote.ItemForm) ([]core.Row, decimal.Decimal) {
	subtotal := decimal.Zero
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		_, total := quote.LineAmounts(it.Quantity, it.UnitPrice, it.DiscountPercent)
		subtotal = subtotal.Add(total)
		name := it.ProductName
		if it.Description != "" {
			name += " · " + it.Description
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.DiscountPercent.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money(total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result, subtotal
}

// primaryOption la opción marcada como principal; si ninguna lo está, la primera.
func primaryOption(opts []quote.OptionForm) (quote.OptionForm, bool) {
	for _, o := range opts {
		if o.IsPrimary {
			return o, true
		}
	}
	if len(opts) > 0 {
		return opts[0], true
	}
	return quote.OptionForm{}, false
}

func optionRows(o quote.OptionForm) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("OPCIÓN: %s   |   Tránsito: %d días   |   Total: %s %s",
				nonEmpty(o.OptionName, "principal"), o.TransitTimeDays, o.Currency, money(o.TotalAmount),
			), props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, l := range o.Legs {
		route := fmt.Sprintf("%d. %s  %s → %s  (%s)",
			l.SequenceNumber,
			strings.ToUpper(nonEmpty(l.TransportMode, l.LegType)),
			nonEmpty(l.OriginLocationName, "—"),
			nonEmpty(l.DestinationLocationName, "—"),
			nonEmpty(l.CarrierName, "sin transportista"),
		)
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(route, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
		for _, c := range l.Charges {
			if !quote.IsSellSide(c.Side) {
				continue
			}
			rows = append(rows, row.New(5).Add(
				col.New(8).Add(text.New(nonEmpty(c.Note, nonEmpty(c.Basis, "cargo")), props.Text{Size: 7.5, Left: 6, Color: colorGray})),
				col.New(4).Add(text.New(c.Currency+" "+money(c.Amount), props.Text{Size: 7.5, Align: align.Right, Right: 1})),
			))
		}
	}
	return rows
}

func totalsRow(subtotal decimal.Decimal, f quote.QuoteForm) core.Row {
	tax := subtotal.Mul(parseDecimal(f.TaxPercent)).Div(hundred)
	shipping := parseDecimal(f.ShippingAmount)
	grand := subtotal.Add(tax).Add(shipping)

	label := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 2, Top: top}
		if bold {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, p)
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1, false),
			label("Impuestos ("+nonEmpty(f.TaxPercent, "0")+"%):", 7, false),
			label("Envío:", 13, false),
			label("TOTAL:", 19, true),
		),
		col.New(4).Add(
			label(money(subtotal), 1, false),
			label(money(tax), 7, false),
			label(money(shipping), 13, false),
			label(money(grand), 19, true),
		),
	)
}

func footerRows(q entity.Quote, f quote.QuoteForm) []core.Row {
	rows := []core.Row{
		row.New(30).Add(
			col.New(3).Add(code.NewQr(q.ID, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Referencia interna: "+q.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
				text.New(nonEmpty(f.TermsConditions, "Tarifas sujetas a disponibilidad de espacio y equipo."), props.Text{
					Size: 7, Top: 10, Left: 3,
				}),
			),
		),
	}
	if f.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+f.Notes, props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// money dos decimales con separador de miles: 1234567.5 → "1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
