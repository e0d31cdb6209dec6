// Package dashboard agrega los contadores de la pantalla inicial del
// panel. Cada fuente entra por una interfaz mínima para no acoplar el
// dashboard a los módulos concretos.
package dashboard

import (
	"context"
	"time"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/consents"
	"vetclinic-admin/internal/domain/inventory"
	"vetclinic-admin/internal/domain/owners"
	"vetclinic-admin/internal/domain/prescriptions"
)

type PatientSource interface {
	Count(ctx context.Context) (int64, error)
}

type OwnerSource interface {
	List(ctx context.Context, f owners.ListFilter) ([]owners.Owner, int64, error)
}

type AppointmentSource interface {
	ListByDate(ctx context.Context, day time.Time) ([]appointments.Appointment, error)
	Count(ctx context.Context, f appointments.ListFilter) (int64, error)
}

type InventorySource interface {
	LowStock(ctx context.Context) ([]inventory.InventoryItem, error)
	OutOfStock(ctx context.Context) ([]inventory.InventoryItem, error)
}

type ConsentSource interface {
	Pending(ctx context.Context) ([]consents.InformedConsent, error)
}

type PrescriptionSource interface {
	Active(ctx context.Context, patientID string) ([]prescriptions.Prescription, error)
}

// Stats es el resumen que pinta la página de inicio.
type Stats struct {
	TotalPatients        int64 `json:"totalPatients"`
	TotalOwners          int64 `json:"totalOwners"`
	AppointmentsToday    int   `json:"appointmentsToday"`
	ScheduledTotal       int64 `json:"scheduledTotal"`
	LowStockItems        int   `json:"lowStockItems"`
	OutOfStockItems      int   `json:"outOfStockItems"`
	PendingConsents      int   `json:"pendingConsents"`
	ActivePrescriptions  int   `json:"activePrescriptions"`
}

type Service struct {
	patients      PatientSource
	owners        OwnerSource
	appointments  AppointmentSource
	inventory     InventorySource
	consents      ConsentSource
	prescriptions PrescriptionSource
	now           func() time.Time
}

func NewService(p PatientSource, o OwnerSource, a AppointmentSource, i InventorySource, c ConsentSource, rx PrescriptionSource) *Service {
	return &Service{
		patients:      p,
		owners:        o,
		appointments:  a,
		inventory:     i,
		consents:      c,
		prescriptions: rx,
		now:           time.Now,
	}
}

// Stats junta los contadores; un fallo en cualquier fuente aborta el
// resumen completo.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var out Stats

	totalPatients, err := s.patients.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	out.TotalPatients = totalPatients

	_, totalOwners, err := s.owners.List(ctx, owners.ListFilter{Size: 1})
	if err != nil {
		return Stats{}, err
	}
	out.TotalOwners = totalOwners

	today, err := s.appointments.ListByDate(ctx, s.now())
	if err != nil {
		return Stats{}, err
	}
	out.AppointmentsToday = len(today)

	scheduled, err := s.appointments.Count(ctx, appointments.ListFilter{Status: appointments.StatusScheduled})
	if err != nil {
		return Stats{}, err
	}
	out.ScheduledTotal = scheduled

	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return Stats{}, err
	}
	out.LowStockItems = len(low)

	out0, err := s.inventory.OutOfStock(ctx)
	if err != nil {
		return Stats{}, err
	}
	out.OutOfStockItems = len(out0)

	pending, err := s.consents.Pending(ctx)
	if err != nil {
		return Stats{}, err
	}
	out.PendingConsents = len(pending)

	active, err := s.prescriptions.Active(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	out.ActivePrescriptions = len(active)

	return out, nil
}
