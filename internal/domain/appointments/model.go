package appointments

import "time"

// Appointment representa una cita agendada para un paciente con un veterinario.
type Appointment struct {
	ID string

	PatientID      string
	VeterinarianID string

	ScheduledDate   time.Time
	DurationMinutes int

	Type   AppointmentType
	Status Status

	Reason string
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime calcula el fin de la cita según su duración.
func (a Appointment) EndTime() time.Time {
	return a.ScheduledDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
