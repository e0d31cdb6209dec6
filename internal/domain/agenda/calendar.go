package agenda

import "time"

// La semana de la agenda empieza en lunes, como el calendario impreso
// de la recepción.

// WeekStart devuelve el lunes 00:00 de la semana de t, en la zona de t.
func WeekStart(t time.Time) time.Time {
	day := t
	offset := (int(day.Weekday()) + 6) % 7 // lunes=0 ... domingo=6
	day = day.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// LeadingBlanks cuenta las celdas vacías antes del día 1 en la grilla
// mensual: si el mes abre en lunes no hay blancos, si abre en domingo
// hay seis.
func LeadingBlanks(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// DaysIn devuelve la cantidad de días del mes.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid arma la grilla del mes en filas de siete celdas. Una celda
// con 0 es un blanco (antes del día 1 o después del último día).
func MonthGrid(year int, month time.Month) [][7]int {
	blanks := LeadingBlanks(year, month)
	days := DaysIn(year, month)

	cells := make([]int, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	grid := make([][7]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		var week [7]int
		copy(week[:], cells[i:i+7])
		grid = append(grid, week)
	}
	return grid
}
