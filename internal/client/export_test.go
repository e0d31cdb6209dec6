package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSV_BOMAndQuoting(t *testing.T) {
	raw, err := EncodeCSV(
		[]string{"Nombre", "Notas"},
		[][]string{{"Rocky", `dijo "guau", dos veces`}},
	)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(raw, utf8BOM), "debe empezar con BOM UTF-8")
	assert.Contains(t, string(raw), `"dijo ""guau"", dos veces"`)
}

func TestCSV_RoundTrip(t *testing.T) {
	headers := []string{"ID", "Medicamento", "Instrucciones"}
	rows := [][]string{
		{"1", "Amoxicilina, 250mg", "con comida"},
		{"2", `gotas "oftálmicas"`, "línea 1\nlínea 2"},
		{"3", "ñandú — tildes y eñes", ""},
	}

	raw, err := EncodeCSV(headers, rows)
	require.NoError(t, err)

	gotHeaders, gotRows, err := DecodeCSV(raw)
	require.NoError(t, err)
	assert.Equal(t, headers, gotHeaders)
	assert.Equal(t, rows, gotRows)
}
