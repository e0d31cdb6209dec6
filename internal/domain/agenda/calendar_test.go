package agenda

import (
	"testing"
	"time"
)

func TestLeadingBlanks(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"month starting on Monday has no blanks", 2026, time.June, 0},       // 1 jun 2026 = lunes
		{"month starting on Tuesday has one blank", 2026, time.September, 1}, // 1 sep 2026 = martes
		{"month starting on Sunday has six blanks", 2026, time.March, 6},     // 1 mar 2026 = domingo
		{"month starting on Wednesday", 2026, time.July, 2},                  // 1 jul 2026 = miércoles
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadingBlanks(tt.year, tt.month); got != tt.want {
				t.Fatalf("LeadingBlanks(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	grid := MonthGrid(2026, time.September) // 30 días, abre martes

	if len(grid) != 5 {
		t.Fatalf("weeks = %d, want 5", len(grid))
	}
	if grid[0][0] != 0 || grid[0][1] != 1 {
		t.Fatalf("first week = %v, want one leading blank then day 1", grid[0])
	}

	// Todos los días del mes aparecen exactamente una vez y en orden.
	seen := 0
	for _, week := range grid {
		for _, d := range week {
			if d == 0 {
				continue
			}
			seen++
			if d != seen {
				t.Fatalf("day out of order: got %d, want %d", d, seen)
			}
		}
	}
	if seen != 30 {
		t.Fatalf("days in grid = %d, want 30", seen)
	}

	// La última fila se rellena con blancos.
	last := grid[len(grid)-1]
	if last[6] != 0 {
		t.Fatalf("expected trailing blank, last week = %v", last)
	}
}

func TestWeekStart(t *testing.T) {
	// Miércoles 9 sep 2026 → lunes 7 sep 2026.
	wed := time.Date(2026, 9, 9, 15, 30, 0, 0, time.UTC)
	want := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(wed); !got.Equal(want) {
		t.Fatalf("WeekStart(wed) = %v, want %v", got, want)
	}

	// Un domingo pertenece a la semana que abrió el lunes anterior.
	sun := time.Date(2026, 9, 13, 8, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(want) {
		t.Fatalf("WeekStart(sun) = %v, want %v", got, want)
	}

	// Un lunes es su propio inicio de semana.
	mon := time.Date(2026, 9, 7, 23, 59, 0, 0, time.UTC)
	if got := WeekStart(mon); !got.Equal(want) {
		t.Fatalf("WeekStart(mon) = %v, want %v", got, want)
	}
}
