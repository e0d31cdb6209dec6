package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/inventory"
	"vetclinic-admin/internal/domain/owners"
	"vetclinic-admin/internal/domain/prescriptions"
)

type stubPatients struct {
	count int64
	err   error
}

func (s stubPatients) Count(ctx context.Context) (int64, error) { return s.count, s.err }

type stubOwners struct{ total int64 }

func (s stubOwners) List(ctx context.Context, f owners.ListFilter) ([]owners.Owner, int64, error) {
	return nil, s.total, nil
}

type stubAppointments struct {
	today     []appointments.Appointment
	scheduled int64
}

func (s stubAppointments) ListByDate(ctx context.Context, day time.Time) ([]appointments.Appointment, error) {
	return s.today, nil
}

func (s stubAppointments) Count(ctx context.Context, f appointments.ListFilter) (int64, error) {
	return s.scheduled, nil
}

type stubInventory struct {
	low []inventory.InventoryItem
	out []inventory.InventoryItem
}

func (s stubInventory) LowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return s.low, nil
}

func (s stubInventory) OutOfStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	return s.out, nil
}

type stubConsents struct{ pending []consents.InformedConsent }

func (s stubConsents) Pending(ctx context.Context) ([]consents.InformedConsent, error) {
	return s.pending, nil
}

type stubPrescriptions struct{ gotPatientID *string }

func (s stubPrescriptions) Active(ctx context.Context, patientID string) ([]prescriptions.Prescription, error) {
	if s.gotPatientID != nil {
		*s.gotPatientID = patientID
	}
	return []prescriptions.Prescription{{}, {}}, nil
}

func TestStats_AggregatesAllSources(t *testing.T) {
	var activeFilter string
	svc := NewService(
		stubPatients{count: 12},
		stubOwners{total: 7},
		stubAppointments{today: make([]appointments.Appointment, 3), scheduled: 9},
		stubInventory{low: make([]inventory.InventoryItem, 2), out: make([]inventory.InventoryItem, 1)},
		stubConsents{pending: make([]consents.InformedConsent, 4)},
		stubPrescriptions{gotPatientID: &activeFilter},
	)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), got.TotalPatients)
	assert.Equal(t, int64(7), got.TotalOwners)
	assert.Equal(t, 3, got.AppointmentsToday)
	assert.Equal(t, int64(9), got.ScheduledTotal)
	assert.Equal(t, 2, got.LowStockItems)
	assert.Equal(t, 1, got.OutOfStockItems)
	assert.Equal(t, 4, got.PendingConsents)
	assert.Equal(t, 2, got.ActivePrescriptions)
	assert.Empty(t, activeFilter, "el dashboard cuenta recetas activas sin filtrar por paciente")
}

func TestStats_SourceFailureAborts(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(
		stubPatients{err: boom},
		stubOwners{},
		stubAppointments{},
		stubInventory{},
		stubConsents{},
		stubPrescriptions{},
	)

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}