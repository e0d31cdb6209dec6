package console

import (
	"fmt"
	"strings"

	"vetclinic-admin/internal/client"
)

var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// RenderMonth dibuja la grilla mensual que manda el backend: semanas de
// lunes a domingo, celdas en blanco fuera del mes y el conteo de citas
// junto a cada día.
func RenderMonth(m client.AgendaMonth) string {
	var b strings.Builder

	name := ""
	if m.Month >= 1 && m.Month <= 12 {
		name = monthNames[m.Month]
	}
	fmt.Fprintf(&b, "%s %d — %d citas\n", name, m.Year, m.Total)
	b.WriteString("  Lu    Ma    Mi    Ju    Vi    Sa    Do\n")

	for _, week := range m.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString("      ")
				continue
			}
			if cell.Count > 0 {
				fmt.Fprintf(&b, "%3d*%-2d", cell.Day, cell.Count)
			} else {
				fmt.Fprintf(&b, "%3d   ", cell.Day)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
