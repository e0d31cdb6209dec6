package agenda

import (
	"context"
	"time"

	"vetclinic-admin/internal/domain/appointments"
)

// Service arma las vistas de agenda a partir de las citas. No tiene
// estado propio: todo se deriva del módulo de citas.
type Service struct {
	appointments *appointments.Service
	now          func() time.Time
}

func NewService(appts *appointments.Service) *Service {
	return &Service{appointments: appts, now: time.Now}
}

// DayView es la agenda de un día.
type DayView struct {
	Date         time.Time
	Appointments []appointments.Appointment
}

// WeekView cubre lunes a domingo.
type WeekView struct {
	WeekStart time.Time
	Days      [7]DayView
}

// MonthDay es la celda de la grilla mensual: día del mes (0 = blanco)
// y cuántas citas tiene.
type MonthDay struct {
	Day   int
	Count int
}

// MonthView es la grilla mensual en filas de siete celdas.
type MonthView struct {
	Year  int
	Month time.Month
	Weeks [][7]MonthDay
	Total int
}

func (s *Service) Daily(ctx context.Context, day time.Time) (DayView, error) {
	items, err := s.appointments.ListByDate(ctx, day)
	if err != nil {
		return DayView{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return DayView{Date: start, Appointments: items}, nil
}

func (s *Service) Weekly(ctx context.Context, anyDay time.Time) (WeekView, error) {
	start := WeekStart(anyDay)
	items, err := s.appointments.ListByRange(ctx, start, start.AddDate(0, 0, 7))
	if err != nil {
		return WeekView{}, err
	}

	view := WeekView{WeekStart: start}
	for i := range view.Days {
		view.Days[i] = DayView{
			Date:         start.AddDate(0, 0, i),
			Appointments: []appointments.Appointment{},
		}
	}
	for _, a := range items {
		idx := int(a.ScheduledDate.Sub(start).Hours() / 24)
		if idx >= 0 && idx < 7 {
			view.Days[idx].Appointments = append(view.Days[idx].Appointments, a)
		}
	}
	return view, nil
}

func (s *Service) Monthly(ctx context.Context, year int, month time.Month) (MonthView, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	items, err := s.appointments.ListByRange(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return MonthView{}, err
	}

	counts := make(map[int]int)
	for _, a := range items {
		counts[a.ScheduledDate.Day()]++
	}

	grid := MonthGrid(year, month)
	weeks := make([][7]MonthDay, len(grid))
	for i, row := range grid {
		for j, d := range row {
			weeks[i][j] = MonthDay{Day: d, Count: counts[d]}
		}
	}

	return MonthView{Year: year, Month: month, Weeks: weeks, Total: len(items)}, nil
}
