package consents

import "time"

// ConsentStatus sigue un flujo de una sola vía: un consentimiento firmado
// nunca vuelve a pendiente.
type ConsentStatus string

const (
	StatusPending ConsentStatus = "PENDING"
	StatusSigned  ConsentStatus = "SIGNED"
)

// InformedConsent es el documento que el propietario firma antes de un
// procedimiento (cirugía, anestesia, eutanasia, etc.).
type InformedConsent struct {
	ID string

	PatientID string
	OwnerID   string

	ProcedureType string
	Title         string
	Content       string

	Status   ConsentStatus
	SignedAt *time.Time
	SignedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c InformedConsent) IsSigned() bool {
	return c.Status == StatusSigned
}
