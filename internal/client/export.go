package client

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
)

// utf8BOM hace que Excel abra el archivo como UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeCSV arma un CSV RFC 4180 (comillas dobladas, campos con comas o
// saltos entre comillas) con BOM UTF-8 al frente.
func EncodeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeCSV lee un CSV generado por EncodeCSV, descartando el BOM si
// está presente. Devuelve encabezados y filas por separado.
func DecodeCSV(raw []byte) ([]string, [][]string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// SaveCSV escribe el CSV en path, creando el directorio si hace falta.
func SaveCSV(path string, headers []string, rows [][]string) error {
	raw, err := EncodeCSV(headers, rows)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// SaveFile persiste un blob descargado del backend en dir, usando el
// nombre que sugirió el servidor.
func SaveFile(dir string, f File) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
