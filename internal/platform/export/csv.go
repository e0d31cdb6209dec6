// Package export genera los archivos descargables (CSV compatible con
// Excel y PDF vía platform/pdf).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM hace que Excel detecte la codificación al abrir el archivo.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV serializa encabezados y filas según RFC 4180, con BOM UTF-8.
func CSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	return buf.Bytes(), nil
}
