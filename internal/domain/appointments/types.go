package appointments

// Status define el ciclo de vida de una cita. Las transiciones son
// monotónicas: SCHEDULED → CONFIRMED → IN_PROGRESS → COMPLETED, y
// CANCELLED desde cualquier estado previo a COMPLETED.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// AppointmentType define los tipos de cita del catálogo.
type AppointmentType string

const (
	TypeConsultation AppointmentType = "CONSULTATION"
	TypeVaccination  AppointmentType = "VACCINATION"
	TypeSurgery      AppointmentType = "SURGERY"
	TypeGrooming     AppointmentType = "GROOMING"
	TypeEmergency    AppointmentType = "EMERGENCY"
	TypeCheckup      AppointmentType = "CHECKUP"
)

var nextStatus = map[Status]Status{
	StatusScheduled:  StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// CanTransition reporta si el cambio from → to es legal.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	if to == StatusCancelled {
		return CanCancel(from)
	}
	return nextStatus[from] == to
}

// CanCancel reporta si una cita en el estado dado todavía se puede cancelar.
func CanCancel(from Status) bool {
	switch from {
	case StatusScheduled, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

// IsTerminal reporta si el estado ya no admite transiciones.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus valida un estado recibido por la API.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	default:
		return "", false
	}
}
