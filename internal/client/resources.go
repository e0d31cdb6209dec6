package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// pageQuery arma los parámetros comunes de paginación y búsqueda.
func pageQuery(page, size int, search string) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if search != "" {
		q.Set("search", search)
	}
	return q
}

// OwnersService cubre /owners.
type OwnersService struct {
	c *Client
}

func (s *OwnersService) Create(ctx context.Context, in OwnerInput) (Owner, error) {
	var out Owner
	err := s.c.do(ctx, http.MethodPost, "/owners", nil, in, &out)
	return out, err
}

func (s *OwnersService) List(ctx context.Context, search string) ([]Owner, error) {
	var out []Owner
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	err := s.c.do(ctx, http.MethodGet, "/owners", q, nil, &out)
	return out, err
}

func (s *OwnersService) Page(ctx context.Context, page, size int, search string) (Page[Owner], error) {
	var out Page[Owner]
	err := s.c.do(ctx, http.MethodGet, "/owners/page", pageQuery(page, size, search), nil, &out)
	return out, err
}

func (s *OwnersService) Get(ctx context.Context, id string) (Owner, error) {
	var out Owner
	err := s.c.do(ctx, http.MethodGet, "/owners/"+id, nil, nil, &out)
	return out, err
}

func (s *OwnersService) Update(ctx context.Context, id string, in OwnerInput) (Owner, error) {
	var out Owner
	err := s.c.do(ctx, http.MethodPut, "/owners/"+id, nil, in, &out)
	return out, err
}

func (s *OwnersService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/owners/"+id, nil, nil, nil)
}

// PatientsService cubre /patients.
type PatientsService struct {
	c *Client
}

func (s *PatientsService) Create(ctx context.Context, in PatientInput) (Patient, error) {
	var out Patient
	err := s.c.do(ctx, http.MethodPost, "/patients", nil, in, &out)
	return out, err
}

func (s *PatientsService) List(ctx context.Context, search, species string) ([]Patient, error) {
	var out []Patient
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if species != "" {
		q.Set("species", species)
	}
	err := s.c.do(ctx, http.MethodGet, "/patients", q, nil, &out)
	return out, err
}

func (s *PatientsService) Page(ctx context.Context, page, size int, search string) (Page[Patient], error) {
	var out Page[Patient]
	err := s.c.do(ctx, http.MethodGet, "/patients/page", pageQuery(page, size, search), nil, &out)
	return out, err
}

func (s *PatientsService) Get(ctx context.Context, id string) (Patient, error) {
	var out Patient
	err := s.c.do(ctx, http.MethodGet, "/patients/"+id, nil, nil, &out)
	return out, err
}

func (s *PatientsService) ByOwner(ctx context.Context, ownerID string) ([]Patient, error) {
	var out []Patient
	err := s.c.do(ctx, http.MethodGet, "/owners/"+ownerID+"/patients", nil, nil, &out)
	return out, err
}

func (s *PatientsService) Update(ctx context.Context, id string, in PatientInput) (Patient, error) {
	var out Patient
	err := s.c.do(ctx, http.MethodPut, "/patients/"+id, nil, in, &out)
	return out, err
}

func (s *PatientsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/patients/"+id, nil, nil, nil)
}

// AppointmentsService cubre /appointments.
type AppointmentsService struct {
	c *Client
}

func (s *AppointmentsService) Create(ctx context.Context, in AppointmentInput) (Appointment, error) {
	var out Appointment
	err := s.c.do(ctx, http.MethodPost, "/appointments", nil, in, &out)
	return out, err
}

// AppointmentFilter filtra el listado plano de citas.
type AppointmentFilter struct {
	PatientID      string
	VeterinarianID string
	Status         string
}

func (f AppointmentFilter) query() url.Values {
	q := url.Values{}
	if f.PatientID != "" {
		q.Set("patientId", f.PatientID)
	}
	if f.VeterinarianID != "" {
		q.Set("veterinarianId", f.VeterinarianID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

func (s *AppointmentsService) List(ctx context.Context, f AppointmentFilter) ([]Appointment, error) {
	var out []Appointment
	err := s.c.do(ctx, http.MethodGet, "/appointments", f.query(), nil, &out)
	return out, err
}

func (s *AppointmentsService) Page(ctx context.Context, page, size int) (Page[Appointment], error) {
	var out Page[Appointment]
	err := s.c.do(ctx, http.MethodGet, "/appointments/page", pageQuery(page, size, ""), nil, &out)
	return out, err
}

func (s *AppointmentsService) Get(ctx context.Context, id string) (Appointment, error) {
	var out Appointment
	err := s.c.do(ctx, http.MethodGet, "/appointments/"+id, nil, nil, &out)
	return out, err
}

// ByDate lista las citas de un día (YYYY-MM-DD).
func (s *AppointmentsService) ByDate(ctx context.Context, date string) ([]Appointment, error) {
	var out []Appointment
	q := url.Values{"date": {date}}
	err := s.c.do(ctx, http.MethodGet, "/appointments/date", q, nil, &out)
	return out, err
}

// ByRange lista las citas entre start y end inclusive (YYYY-MM-DD).
func (s *AppointmentsService) ByRange(ctx context.Context, start, end string) ([]Appointment, error) {
	var out []Appointment
	q := url.Values{"start": {start}, "end": {end}}
	err := s.c.do(ctx, http.MethodGet, "/appointments/date-range", q, nil, &out)
	return out, err
}

func (s *AppointmentsService) Upcoming(ctx context.Context, limit int) ([]Appointment, error) {
	var out []Appointment
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	err := s.c.do(ctx, http.MethodGet, "/appointments/upcoming", q, nil, &out)
	return out, err
}

func (s *AppointmentsService) Count(ctx context.Context, status string) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	err := s.c.do(ctx, http.MethodGet, "/appointments/count", q, nil, &out)
	return out.Count, err
}

func (s *AppointmentsService) Update(ctx context.Context, id string, in AppointmentInput) (Appointment, error) {
	var out Appointment
	err := s.c.do(ctx, http.MethodPut, "/appointments/"+id, nil, in, &out)
	return out, err
}

// UpdateStatus avanza la cita al estado dado; el backend rechaza las
// transiciones ilegales.
func (s *AppointmentsService) UpdateStatus(ctx context.Context, id, status string) (Appointment, error) {
	var out Appointment
	err := s.c.do(ctx, http.MethodPatch, "/appointments/"+id+"/status", nil,
		map[string]string{"status": status}, &out)
	return out, err
}

func (s *AppointmentsService) Cancel(ctx context.Context, id string) (Appointment, error) {
	var out Appointment
	err := s.c.do(ctx, http.MethodPost, "/appointments/"+id+"/cancel", nil, nil, &out)
	return out, err
}

// MedicalRecordsService cubre /medical-records.
type MedicalRecordsService struct {
	c *Client
}

func (s *MedicalRecordsService) Create(ctx context.Context, in MedicalRecordInput) (MedicalRecord, error) {
	var out MedicalRecord
	err := s.c.do(ctx, http.MethodPost, "/medical-records", nil, in, &out)
	return out, err
}

func (s *MedicalRecordsService) Get(ctx context.Context, id string) (MedicalRecord, error) {
	var out MedicalRecord
	err := s.c.do(ctx, http.MethodGet, "/medical-records/"+id, nil, nil, &out)
	return out, err
}

func (s *MedicalRecordsService) ByPatient(ctx context.Context, patientID string) ([]MedicalRecord, error) {
	var out []MedicalRecord
	err := s.c.do(ctx, http.MethodGet, "/patients/"+patientID+"/medical-records", nil, nil, &out)
	return out, err
}

func (s *MedicalRecordsService) Update(ctx context.Context, id string, in MedicalRecordInput) (MedicalRecord, error) {
	var out MedicalRecord
	err := s.c.do(ctx, http.MethodPut, "/medical-records/"+id, nil, in, &out)
	return out, err
}

func (s *MedicalRecordsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/medical-records/"+id, nil, nil, nil)
}
