package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vetclinic-admin/internal/domain/inventory"
)

func TestAppointmentStyle_KnownStatuses(t *testing.T) {
	tests := []struct {
		status string
		label  string
		color  Color
	}{
		{"SCHEDULED", "Programada", ColorBlue},
		{"CONFIRMED", "Confirmada", ColorCyan},
		{"IN_PROGRESS", "En curso", ColorYellow},
		{"COMPLETED", "Completada", ColorGreen},
		{"CANCELLED", "Cancelada", ColorGray},
		{"scheduled", "Programada", ColorBlue},
		{"  completed ", "Completada", ColorGreen},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			st := AppointmentStyle(tt.status)
			assert.Equal(t, tt.label, st.Label)
			assert.Equal(t, tt.color, st.Color)
		})
	}
}

func TestAppointmentStyle_UnknownFallsBackToScheduled(t *testing.T) {
	want := AppointmentStyle("SCHEDULED")
	for _, status := range []string{"", "NO_SHOW", "???", "RESCHEDULED"} {
		assert.Equal(t, want, AppointmentStyle(status), "status %q", status)
	}
}

func TestStockStyle(t *testing.T) {
	// Los valores que sirve el backend son el enum de inventario.
	assert.Equal(t, "Agotado", StockStyle(string(inventory.StockOut)).Label)
	assert.Equal(t, "Stock bajo", StockStyle(string(inventory.StockLow)).Label)
	assert.Equal(t, "Disponible", StockStyle(string(inventory.StockAvailable)).Label)
	assert.Equal(t, "Agotado", StockStyle(" out ").Label)
}
