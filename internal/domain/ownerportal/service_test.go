package ownerportal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/owners"
	"vetclinic-admin/internal/domain/patients"
)

type stubOwners struct {
	byUser map[string]owners.Owner
}

func (s stubOwners) GetByUserID(_ context.Context, userID string) (owners.Owner, error) {
	o, ok := s.byUser[userID]
	if !ok {
		return owners.Owner{}, errors.New("not found")
	}
	return o, nil
}

type stubPatients struct {
	byOwner map[string][]patients.Patient
}

func (s stubPatients) ListByOwner(_ context.Context, ownerID string) ([]patients.Patient, error) {
	return s.byOwner[ownerID], nil
}

type stubAppointments struct {
	items   []appointments.Appointment
	created []appointments.CreateInput
}

func (s *stubAppointments) List(_ context.Context, f appointments.ListFilter) ([]appointments.Appointment, int64, error) {
	out := make([]appointments.Appointment, 0)
	for _, a := range s.items {
		if f.PatientID == "" || a.PatientID == f.PatientID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubAppointments) Create(_ context.Context, in appointments.CreateInput) (appointments.Appointment, error) {
	s.created = append(s.created, in)
	return appointments.Appointment{
		ID:            "appt-1",
		PatientID:     in.PatientID,
		ScheduledDate: in.ScheduledDate,
		Status:        appointments.StatusScheduled,
	}, nil
}

type stubConsents struct{}

func (stubConsents) ListByOwner(_ context.Context, _ string) ([]consents.InformedConsent, error) {
	return nil, nil
}

func (stubConsents) SignAsOwner(_ context.Context, _, _, _ string) (consents.InformedConsent, error) {
	return consents.InformedConsent{}, nil
}

func newPortal(appts *stubAppointments) *Service {
	return NewService(
		stubOwners{byUser: map[string]owners.Owner{
			"user-1": {ID: "owner-1", FirstName: "Laura", LastName: "Gómez"},
		}},
		stubPatients{byOwner: map[string][]patients.Patient{
			"owner-1": {{ID: "pet-1", Name: "Rocky", OwnerID: "owner-1"}},
		}},
		appts,
		stubConsents{},
	)
}

func TestProfile_NoLinkedOwner(t *testing.T) {
	svc := newPortal(&stubAppointments{})

	_, err := svc.Profile(context.Background(), "stranger")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestRequestAppointment_OwnPet(t *testing.T) {
	appts := &stubAppointments{}
	svc := newPortal(appts)

	when := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	a, err := svc.RequestAppointment(context.Background(), "user-1", RequestInput{
		PatientID:     "pet-1",
		ScheduledDate: when,
		Type:          "CONSULTATION",
		Reason:        "Control",
	})
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusScheduled, a.Status)
	require.Len(t, appts.created, 1)
	assert.Equal(t, "pet-1", appts.created[0].PatientID)
}

func TestRequestAppointment_ForeignPetRejected(t *testing.T) {
	appts := &stubAppointments{}
	svc := newPortal(appts)

	_, err := svc.RequestAppointment(context.Background(), "user-1", RequestInput{
		PatientID:     "pet-ajeno",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrNotMyPet)
	assert.Empty(t, appts.created)
}

func TestUpcomingAppointments_FiltersPastAndTerminal(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	appts := &stubAppointments{items: []appointments.Appointment{
		{ID: "a1", PatientID: "pet-1", ScheduledDate: now.Add(-time.Hour), Status: appointments.StatusScheduled},
		{ID: "a2", PatientID: "pet-1", ScheduledDate: now.Add(time.Hour), Status: appointments.StatusCancelled},
		{ID: "a3", PatientID: "pet-1", ScheduledDate: now.Add(2 * time.Hour), Status: appointments.StatusConfirmed},
	}}
	svc := newPortal(appts)

	out, err := svc.UpcomingAppointments(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a3", out[0].ID)
}
