package prescriptions

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProgressPercent(t *testing.T) {
	start := date(2026, 1, 1)
	end := date(2026, 1, 11) // 10 días

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start clamps to 0", date(2025, 12, 25), 0},
		{"at start is 0", start, 0},
		{"halfway", date(2026, 1, 6), 50},
		{"at end is 100", end, 100},
		{"after end is 100", date(2026, 2, 1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(start, end, tt.now)
			if got != tt.want {
				t.Fatalf("ProgressPercent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressPercent_InvertedRange(t *testing.T) {
	// end < start: denominador no positivo, el rango se considera
	// agotado y el avance es 100 sin importar dónde caiga now.
	start := date(2026, 1, 20)
	end := date(2026, 1, 10)

	if got := ProgressPercent(start, end, date(2026, 1, 15)); got != 100 {
		t.Fatalf("ProgressPercent with now >= end = %v, want 100", got)
	}
	if got := ProgressPercent(start, end, date(2026, 1, 5)); got != 100 {
		t.Fatalf("ProgressPercent before inverted range = %v, want 100", got)
	}
}

func TestDerivedFlags(t *testing.T) {
	p := Prescription{
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 1, 10),
	}

	if !p.IsCurrentlyActive(date(2026, 1, 5)) {
		t.Fatalf("expected active within range")
	}
	if p.IsCurrentlyActive(date(2026, 1, 11)) {
		t.Fatalf("expected inactive after end")
	}
	if !p.IsExpired(date(2026, 1, 11)) {
		t.Fatalf("expected expired after end")
	}
	if p.IsExpired(date(2026, 1, 10)) {
		t.Fatalf("expected not expired on the last day")
	}
}
