// Package pdf genera la tarjeta de control de stock (kardex) de un producto en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + unidad / tipo   │  KARDEX + fecha de emisión │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Detalle | Entrada | Salida | P.Unit |     │
//	│         Saldo | Costo prom.                                      │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Saldo / Costo promedio            │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

var _ inventory.KardexPDFGenerator = (*KardexPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorOut     = &props.Color{Red: 160, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// KardexPDFGenerator implementa inventory.KardexPDFGenerator con Maroto v2.
type KardexPDFGenerator struct {
	company string
}

// NewKardexPDFGenerator construye el generador. company se imprime como autor del documento.
func NewKardexPDFGenerator(company string) *KardexPDFGenerator {
	return &KardexPDFGenerator{company: company}
}

// GenerateKardexPDF renderiza el kardex y devuelve los bytes del PDF.
func (g *KardexPDFGenerator) GenerateKardexPDF(_ context.Context, k *dto.KardexResponse) ([]byte, error) {
	if k == nil {
		return nil, fmt.Errorf("pdf: kardex vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Kardex "+k.Product.Title, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(k))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	if len(k.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(lineRows(k.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(k))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(k *dto.KardexResponse) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(k.Product.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Unidad: %s   |   Tipo de material: %s",
				k.Product.UnitOfMeasurement, k.Product.MaterialType,
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("KARDEX DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+k.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 1, align.Left),
		h("Tipo", 1, align.Center),
		h("Detalle", 3, align.Left),
		h("Entrada", 1, align.Right),
		h("Salida", 1, align.Right),
		h("P. Unit.", 1, align.Right),
		h("Saldo", 2, align.Right),
		h("Costo prom.", 2, align.Right),
	)
}

func lineRows(lines []dto.KardexLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	for _, l := range lines {
		in, out1, label, c := "", "", "Entrada", colorIn
		if l.Type == dto.KardexIn {
			in = formatNumber(l.In, 2)
		} else {
			out1 = formatNumber(l.Out, 2)
			label, c = "Salida", colorOut
		}
		out = append(out, row.New(6).Add(
			cell(l.Date.Format("02/01/2006"), 1, align.Left, nil),
			cell(label, 1, align.Center, c),
			cell(l.Detail, 3, align.Left, nil),
			cell(in, 1, align.Right, nil),
			cell(out1, 1, align.Right, nil),
			cell(formatNumber(l.UnitPrice, 2), 1, align.Right, nil),
			cell(formatNumber(l.Balance, 2), 2, align.Right, nil),
			cell(formatNumber(l.AverageCost, 4), 2, align.Right, nil),
		))
	}
	return out
}

func totalsRow(k *dto.KardexResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Total entradas:"),
			label("Total salidas:"),
			label("Saldo:"),
			label("Costo promedio:"),
		),
		col.New(3).Add(
			value(formatNumber(k.TotalIn, 2)),
			value(formatNumber(k.TotalOut, 2)),
			value(formatNumber(k.Balance, 2)),
			value(formatNumber(k.AverageCost, 4)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatNumber redondea a places decimales e inserta comas de miles.
// Ej: 1234567.5 -> "1,234,567.50"
func formatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, intPart[i])
	}
	return sign + string(buf) + frac
}
