package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Table es un documento tabular simple en A4: título, subtítulo,
// encabezados y filas. Es el formato de todos los reportes de la clínica.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	// Widths en mm por columna; si falta, se reparte el ancho útil.
	Widths []float64
	Rows   [][]string
}

const (
	pageWidth  = 210.0
	marginMM   = 10.0
	lineHeight = 7.0
)

// Render produce el PDF paginado (el salto de página lo maneja fpdf).
func Render(t Table) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM+5)
	doc.AddPage()

	usable := pageWidth - 2*marginMM

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(usable, 10, t.Title, "", 1, "C", false, 0, "")

	if t.Subtitle != "" {
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(90, 90, 90)
		doc.CellFormat(usable, 6, t.Subtitle, "", 1, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(4)

	widths := t.Widths
	if len(widths) != len(t.Headers) {
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = usable / float64(len(t.Headers))
		}
	}

	header := func() {
		doc.SetFont("Helvetica", "B", 9)
		doc.SetFillColor(230, 230, 230)
		for i, h := range t.Headers {
			doc.CellFormat(widths[i], lineHeight, h, "1", 0, "L", true, 0, "")
		}
		doc.Ln(-1)
	}
	header()

	doc.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		// Reimprimir encabezado al saltar de página.
		if doc.GetY() > 297-marginMM-2*lineHeight {
			doc.AddPage()
			header()
			doc.SetFont("Helvetica", "", 9)
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			doc.CellFormat(widths[i], lineHeight, truncate(cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate recorta el texto que no entra en la celda (aprox 2mm por carácter).
func truncate(s string, widthMM float64) string {
	max := int(widthMM / 2)
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
