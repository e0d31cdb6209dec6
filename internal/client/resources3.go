package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ClinicServicesService cubre /services (catálogo de la clínica).
type ClinicServicesService struct {
	c *Client
}

func (s *ClinicServicesService) Create(ctx context.Context, in ClinicServiceInput) (ClinicService, error) {
	var out ClinicService
	err := s.c.do(ctx, http.MethodPost, "/services", nil, in, &out)
	return out, err
}

func (s *ClinicServicesService) List(ctx context.Context, search, category string) ([]ClinicService, error) {
	var out []ClinicService
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	err := s.c.do(ctx, http.MethodGet, "/services", q, nil, &out)
	return out, err
}

func (s *ClinicServicesService) Page(ctx context.Context, page, size int, search string) (Page[ClinicService], error) {
	var out Page[ClinicService]
	err := s.c.do(ctx, http.MethodGet, "/services/page", pageQuery(page, size, search), nil, &out)
	return out, err
}

func (s *ClinicServicesService) Active(ctx context.Context) ([]ClinicService, error) {
	var out []ClinicService
	err := s.c.do(ctx, http.MethodGet, "/services/active", nil, nil, &out)
	return out, err
}

func (s *ClinicServicesService) Get(ctx context.Context, id string) (ClinicService, error) {
	var out ClinicService
	err := s.c.do(ctx, http.MethodGet, "/services/"+id, nil, nil, &out)
	return out, err
}

func (s *ClinicServicesService) Update(ctx context.Context, id string, in ClinicServiceInput) (ClinicService, error) {
	var out ClinicService
	err := s.c.do(ctx, http.MethodPut, "/services/"+id, nil, in, &out)
	return out, err
}

func (s *ClinicServicesService) ToggleActive(ctx context.Context, id string) (ClinicService, error) {
	var out ClinicService
	err := s.c.do(ctx, http.MethodPatch, "/services/"+id+"/toggle-active", nil, nil, &out)
	return out, err
}

func (s *ClinicServicesService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/services/"+id, nil, nil, nil)
}

// UsersService cubre /users, /roles y /permissions (solo ADMIN).
type UsersService struct {
	c *Client
}

func (s *UsersService) Create(ctx context.Context, in UserInput) (User, error) {
	var out User
	err := s.c.do(ctx, http.MethodPost, "/users", nil, in, &out)
	return out, err
}

func (s *UsersService) List(ctx context.Context, search, role string) ([]User, error) {
	var out []User
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if role != "" {
		q.Set("role", role)
	}
	err := s.c.do(ctx, http.MethodGet, "/users", q, nil, &out)
	return out, err
}

func (s *UsersService) Page(ctx context.Context, page, size int, search string) (Page[User], error) {
	var out Page[User]
	err := s.c.do(ctx, http.MethodGet, "/users/page", pageQuery(page, size, search), nil, &out)
	return out, err
}

func (s *UsersService) Veterinarians(ctx context.Context) ([]User, error) {
	var out []User
	err := s.c.do(ctx, http.MethodGet, "/users/veterinarians", nil, nil, &out)
	return out, err
}

func (s *UsersService) Get(ctx context.Context, id string) (User, error) {
	var out User
	err := s.c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &out)
	return out, err
}

func (s *UsersService) Update(ctx context.Context, id string, in UserInput) (User, error) {
	var out User
	err := s.c.do(ctx, http.MethodPut, "/users/"+id, nil, in, &out)
	return out, err
}

func (s *UsersService) ToggleActive(ctx context.Context, id string) (User, error) {
	var out User
	err := s.c.do(ctx, http.MethodPatch, "/users/"+id+"/toggle-active", nil, nil, &out)
	return out, err
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}

func (s *UsersService) Roles(ctx context.Context) ([]RoleInfo, error) {
	var out []RoleInfo
	err := s.c.do(ctx, http.MethodGet, "/roles", nil, nil, &out)
	return out, err
}

func (s *UsersService) Permissions(ctx context.Context) ([]Permission, error) {
	var out []Permission
	err := s.c.do(ctx, http.MethodGet, "/permissions", nil, nil, &out)
	return out, err
}

// DashboardService cubre /dashboard.
type DashboardService struct {
	c *Client
}

func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	err := s.c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out)
	return out, err
}

// AgendaService cubre /agenda.
type AgendaService struct {
	c *Client
}

// Daily trae la agenda de un día; date en YYYY-MM-DD, "" usa hoy.
func (s *AgendaService) Daily(ctx context.Context, date string) (AgendaDay, error) {
	var out AgendaDay
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	err := s.c.do(ctx, http.MethodGet, "/agenda/daily", q, nil, &out)
	return out, err
}

// Weekly trae la semana (lunes a domingo) que contiene date.
func (s *AgendaService) Weekly(ctx context.Context, date string) (AgendaWeek, error) {
	var out AgendaWeek
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	err := s.c.do(ctx, http.MethodGet, "/agenda/weekly", q, nil, &out)
	return out, err
}

// Monthly trae el conteo por día del mes; year/month en cero usan el actual.
func (s *AgendaService) Monthly(ctx context.Context, year, month int) (AgendaMonth, error) {
	var out AgendaMonth
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if month > 0 {
		q.Set("month", strconv.Itoa(month))
	}
	err := s.c.do(ctx, http.MethodGet, "/agenda/monthly", q, nil, &out)
	return out, err
}

// ReportsService cubre /reports, todos devuelven blobs descargables.
type ReportsService struct {
	c *Client
}

// Appointments genera el reporte de citas entre start y end (YYYY-MM-DD,
// vacíos usan el mes actual); format es PDF, CSV o EXCEL.
func (s *ReportsService) Appointments(ctx context.Context, format, start, end string) (File, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	return s.c.blob(ctx, "/reports/appointments", q)
}

func (s *ReportsService) Patients(ctx context.Context, format string) (File, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	return s.c.blob(ctx, "/reports/patients", q)
}

func (s *ReportsService) Services(ctx context.Context, format string) (File, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	return s.c.blob(ctx, "/reports/services", q)
}

// OwnerPortalService cubre /owner-portal (rol OWNER).
type OwnerPortalService struct {
	c *Client
}

func (s *OwnerPortalService) Profile(ctx context.Context) (Owner, error) {
	var out Owner
	err := s.c.do(ctx, http.MethodGet, "/owner-portal/profile", nil, nil, &out)
	return out, err
}

func (s *OwnerPortalService) MyPets(ctx context.Context) ([]Patient, error) {
	var out []Patient
	err := s.c.do(ctx, http.MethodGet, "/owner-portal/my-pets", nil, nil, &out)
	return out, err
}

func (s *OwnerPortalService) MyAppointments(ctx context.Context) ([]PortalAppointment, error) {
	var out []PortalAppointment
	err := s.c.do(ctx, http.MethodGet, "/owner-portal/my-appointments", nil, nil, &out)
	return out, err
}

func (s *OwnerPortalService) UpcomingAppointments(ctx context.Context) ([]PortalAppointment, error) {
	var out []PortalAppointment
	err := s.c.do(ctx, http.MethodGet, "/owner-portal/my-appointments/upcoming", nil, nil, &out)
	return out, err
}

// RequestAppointment agenda una cita para una mascota propia; nace en
// estado SCHEDULED hasta que el personal la confirme.
func (s *OwnerPortalService) RequestAppointment(ctx context.Context, in AppointmentRequest) (PortalAppointment, error) {
	var out PortalAppointment
	err := s.c.do(ctx, http.MethodPost, "/owner-portal/appointments", nil, in, &out)
	return out, err
}

func (s *OwnerPortalService) MyConsents(ctx context.Context) ([]InformedConsent, error) {
	var out []InformedConsent
	err := s.c.do(ctx, http.MethodGet, "/owner-portal/my-consents", nil, nil, &out)
	return out, err
}

func (s *OwnerPortalService) SignConsent(ctx context.Context, id string) (InformedConsent, error) {
	var out InformedConsent
	err := s.c.do(ctx, http.MethodPost, "/owner-portal/consents/"+id+"/sign", nil, nil, &out)
	return out, err
}
