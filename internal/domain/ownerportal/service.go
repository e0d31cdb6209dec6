// Package ownerportal expone la vista restringida de un propietario
// autenticado: solo sus mascotas, sus citas y sus consentimientos.
package ownerportal

import (
	"context"
	"errors"
	"sort"
	"time"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/owners"
	"vetclinic-admin/internal/domain/patients"
)

var (
	// ErrNoProfile indica que la cuenta no está vinculada a un propietario.
	ErrNoProfile = errors.New("user has no owner profile")
	// ErrNotMyPet indica que la mascota no pertenece al propietario.
	ErrNotMyPet = errors.New("patient does not belong to owner")
)

type OwnerSource interface {
	GetByUserID(ctx context.Context, userID string) (owners.Owner, error)
}

type PatientSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]patients.Patient, error)
}

type AppointmentSource interface {
	List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, int64, error)
	Create(ctx context.Context, in appointments.CreateInput) (appointments.Appointment, error)
}

type ConsentSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]consents.InformedConsent, error)
	SignAsOwner(ctx context.Context, id, ownerID, signedBy string) (consents.InformedConsent, error)
}

type Service struct {
	owners       OwnerSource
	patients     PatientSource
	appointments AppointmentSource
	consents     ConsentSource
}

func NewService(o OwnerSource, p PatientSource, a AppointmentSource, c ConsentSource) *Service {
	return &Service{owners: o, patients: p, appointments: a, consents: c}
}

// Profile resuelve el propietario vinculado a la cuenta autenticada.
func (s *Service) Profile(ctx context.Context, userID string) (owners.Owner, error) {
	o, err := s.owners.GetByUserID(ctx, userID)
	if err != nil {
		return owners.Owner{}, ErrNoProfile
	}
	return o, nil
}

func (s *Service) MyPets(ctx context.Context, userID string) ([]patients.Patient, error) {
	o, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.patients.ListByOwner(ctx, o.ID)
}

// MyAppointments junta las citas de todas las mascotas del propietario,
// ordenadas por fecha.
func (s *Service) MyAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	pets, err := s.MyPets(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]appointments.Appointment, 0)
	for _, p := range pets {
		items, _, err := s.appointments.List(ctx, appointments.ListFilter{PatientID: p.ID})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out, nil
}

// UpcomingAppointments filtra las citas futuras no terminales.
func (s *Service) UpcomingAppointments(ctx context.Context, userID string, now time.Time) ([]appointments.Appointment, error) {
	all, err := s.MyAppointments(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0)
	for _, a := range all {
		if a.ScheduledDate.Before(now) || appointments.IsTerminal(a.Status) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Service) MyConsents(ctx context.Context, userID string) ([]consents.InformedConsent, error) {
	o, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.consents.ListByOwner(ctx, o.ID)
}

// RequestInput es la solicitud de cita desde el portal.
type RequestInput struct {
	PatientID     string
	ScheduledDate time.Time
	Type          string
	Reason        string
}

// RequestAppointment agenda una cita para una mascota del propietario
// autenticado; la cita nace SCHEDULED y el personal la confirma después.
func (s *Service) RequestAppointment(ctx context.Context, userID string, in RequestInput) (appointments.Appointment, error) {
	pets, err := s.MyPets(ctx, userID)
	if err != nil {
		return appointments.Appointment{}, err
	}

	mine := false
	for _, p := range pets {
		if p.ID == in.PatientID {
			mine = true
			break
		}
	}
	if !mine {
		return appointments.Appointment{}, ErrNotMyPet
	}

	return s.appointments.Create(ctx, appointments.CreateInput{
		PatientID:     in.PatientID,
		ScheduledDate: in.ScheduledDate,
		Type:          in.Type,
		Reason:        in.Reason,
	})
}

// SignConsent firma en nombre del propietario autenticado; la
// verificación de pertenencia la hace el módulo de consentimientos.
func (s *Service) SignConsent(ctx context.Context, userID, consentID string) (consents.InformedConsent, error) {
	o, err := s.Profile(ctx, userID)
	if err != nil {
		return consents.InformedConsent{}, err
	}
	return s.consents.SignAsOwner(ctx, consentID, o.ID, o.FullName())
}
