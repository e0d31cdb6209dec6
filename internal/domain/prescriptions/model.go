package prescriptions

import "time"

// Prescription representa una prescripción asociada a un registro médico
// y enlazada a un ítem de inventario (el medicamento) para validar stock.
type Prescription struct {
	ID string

	MedicalRecordID string
	PatientID       string
	MedicationID    string

	MedicationName string

	Dosage    string
	Frequency string
	Duration  string

	StartDate time.Time
	EndDate   time.Time

	Instructions string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reporta si el tratamiento ya terminó (derivado, no persiste).
func (p Prescription) IsExpired(now time.Time) bool {
	return now.After(p.EndDate)
}

// IsCurrentlyActive reporta si hoy cae dentro del tratamiento.
func (p Prescription) IsCurrentlyActive(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// Progress calcula el avance del tratamiento como porcentaje 0..100.
// Con now >= end devuelve 100 sin importar el signo del denominador.
func (p Prescription) Progress(now time.Time) float64 {
	return ProgressPercent(p.StartDate, p.EndDate, now)
}

func ProgressPercent(start, end, now time.Time) float64 {
	if !now.Before(end) {
		return 100
	}
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(start)) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
