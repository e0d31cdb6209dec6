package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vetclinic-admin/internal/client"
)

func TestRenderMonth_LeadingBlanksAlignDayOne(t *testing.T) {
	// Septiembre 2026 empieza martes: una celda en blanco antes del 1.
	m := client.AgendaMonth{
		Year:  2026,
		Month: 9,
		Total: 3,
		Weeks: [][]client.AgendaMonthCell{
			{{Day: 0}, {Day: 1, Count: 2}, {Day: 2}, {Day: 3, Count: 1}, {Day: 4}, {Day: 5}, {Day: 6}},
		},
	}

	out := RenderMonth(m)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Septiembre 2026")
	assert.Contains(t, lines[0], "3 citas")

	// La fila de la semana arranca con seis espacios (celda vacía del lunes).
	assert.True(t, strings.HasPrefix(lines[2], "      "), "fila: %q", lines[2])
	assert.Contains(t, lines[2], "1*2")
	assert.Contains(t, lines[2], "3*1")
}
