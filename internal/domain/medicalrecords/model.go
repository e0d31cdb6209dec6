package medicalrecords

import "time"

// Vitals agrupa los signos vitales tomados durante la consulta.
type Vitals struct {
	WeightKg     float64
	TemperatureC float64
	HeartRate    int
}

// MedicalRecord representa una entrada de la historia clínica de un paciente.
// Un paciente tiene muchas entradas, ordenadas por RecordDate.
type MedicalRecord struct {
	ID string

	PatientID      string
	VeterinarianID string

	RecordDate time.Time

	Symptoms  string
	Diagnosis string
	Treatment string

	Vitals Vitals

	FollowUpRequired bool
	FollowUpDate     *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
