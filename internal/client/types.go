package client

import "time"

// DTOs del wire. Replican los sobres JSON del backend; el cliente no
// agrega campos derivados propios, usa los que el servidor ya calcula.

// Page es la página server-driven de los endpoints /page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// TokenPair es la respuesta de login/register/refresh.
type TokenPair struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         SessionUser `json:"user"`
}

type Owner struct {
	ID             string    `json:"id"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Notes          string    `json:"notes"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type OwnerInput struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Notes          string `json:"notes,omitempty"`
	UserID         string `json:"userId,omitempty"`
}

type Patient struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Age       int        `json:"age"`
	WeightKg  float64    `json:"weight"`
	Microchip string     `json:"microchip"`
	OwnerID   string     `json:"ownerId"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type PatientInput struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed,omitempty"`
	Gender    string  `json:"gender,omitempty"`
	BirthDate string  `json:"birthDate,omitempty"` // YYYY-MM-DD
	WeightKg  float64 `json:"weight,omitempty"`
	Microchip string  `json:"microchip,omitempty"`
	OwnerID   string  `json:"ownerId"`
	Notes     string  `json:"notes,omitempty"`
}

type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	VeterinarianID  string    `json:"veterinarianId"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"appointmentType"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AppointmentInput struct {
	PatientID       string `json:"patientId"`
	VeterinarianID  string `json:"veterinarianId,omitempty"`
	ScheduledDate   string `json:"scheduledDate"` // RFC3339
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Type            string `json:"appointmentType"`
	Reason          string `json:"reason,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type Vitals struct {
	WeightKg     float64 `json:"weight"`
	TemperatureC float64 `json:"temperature"`
	HeartRate    int     `json:"heartRate"`
}

type MedicalRecord struct {
	ID               string     `json:"id"`
	PatientID        string     `json:"patientId"`
	VeterinarianID   string     `json:"veterinarianId"`
	RecordDate       time.Time  `json:"recordDate"`
	Symptoms         string     `json:"symptoms"`
	Diagnosis        string     `json:"diagnosis"`
	Treatment        string     `json:"treatment"`
	Vitals           Vitals     `json:"vitals"`
	FollowUpRequired bool       `json:"followUpRequired"`
	FollowUpDate     *time.Time `json:"followUpDate,omitempty"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type MedicalRecordInput struct {
	PatientID        string `json:"patientId"`
	VeterinarianID   string `json:"veterinarianId,omitempty"`
	RecordDate       string `json:"recordDate,omitempty"` // RFC3339
	Symptoms         string `json:"symptoms,omitempty"`
	Diagnosis        string `json:"diagnosis"`
	Treatment        string `json:"treatment,omitempty"`
	Vitals           Vitals `json:"vitals"`
	FollowUpRequired bool   `json:"followUpRequired,omitempty"`
	FollowUpDate     string `json:"followUpDate,omitempty"` // YYYY-MM-DD
	Notes            string `json:"notes,omitempty"`
}

type Prescription struct {
	ID              string    `json:"id"`
	MedicalRecordID string    `json:"medicalRecordId"`
	PatientID       string    `json:"patientId"`
	MedicationID    string    `json:"medicationId"`
	MedicationName  string    `json:"medicationName"`
	Dosage          string    `json:"dosage"`
	Frequency       string    `json:"frequency"`
	Duration        string    `json:"duration"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Instructions    string    `json:"instructions"`
	Active          bool      `json:"active"`
	Progress        float64   `json:"progress"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type PrescriptionInput struct {
	MedicalRecordID string `json:"medicalRecordId,omitempty"`
	PatientID       string `json:"patientId"`
	MedicationID    string `json:"medicationId"`
	Dosage          string `json:"dosage"`
	Frequency       string `json:"frequency"`
	Duration        string `json:"duration"`
	StartDate       string `json:"startDate"` // YYYY-MM-DD
	EndDate         string `json:"endDate"`   // YYYY-MM-DD
	Instructions    string `json:"instructions,omitempty"`
}

type InventoryItem struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity"`
	MinQuantity    int        `json:"minQuantity"`
	UnitPrice      float64    `json:"unitPrice"`
	Supplier       string     `json:"supplier"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type InventoryItemInput struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Description    string  `json:"description,omitempty"`
	Quantity       int     `json:"quantity"`
	MinQuantity    int     `json:"minQuantity"`
	UnitPrice      float64 `json:"unitPrice"`
	Supplier       string  `json:"supplier,omitempty"`
	ExpirationDate string  `json:"expirationDate,omitempty"` // YYYY-MM-DD
}

type InformedConsent struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patientId"`
	OwnerID       string     `json:"ownerId"`
	ProcedureType string     `json:"procedureType"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	SignedBy      string     `json:"signedBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ConsentInput struct {
	PatientID     string `json:"patientId"`
	OwnerID       string `json:"ownerId"`
	ProcedureType string `json:"procedureType,omitempty"`
	Title         string `json:"title"`
	Content       string `json:"content,omitempty"`
}

type ClinicService struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ClinicServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	FullName    string    `json:"fullName"`
	Roles       []string  `json:"roles"`
	PrimaryRole string    `json:"primaryRole"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserInput struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

type RoleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DashboardStats struct {
	TotalPatients       int64 `json:"totalPatients"`
	TotalOwners         int64 `json:"totalOwners"`
	AppointmentsToday   int   `json:"appointmentsToday"`
	ScheduledTotal      int64 `json:"scheduledTotal"`
	LowStockItems       int   `json:"lowStockItems"`
	OutOfStockItems     int   `json:"outOfStockItems"`
	PendingConsents     int   `json:"pendingConsents"`
	ActivePrescriptions int   `json:"activePrescriptions"`
}

// PortalAppointment es la cita tal como la expone el portal de
// propietarios (campos recortados, clave "type").
type PortalAppointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason"`
}

// AppointmentRequest es la solicitud de cita desde el portal.
type AppointmentRequest struct {
	PatientID     string `json:"patientId"`
	ScheduledDate string `json:"scheduledDate"` // RFC3339
	Type          string `json:"type"`
	Reason        string `json:"reason,omitempty"`
}

type AgendaEntry struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	VeterinarianID  string    `json:"veterinarianId"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason"`
}

type AgendaDay struct {
	Date         string        `json:"date"`
	Appointments []AgendaEntry `json:"appointments"`
}

type AgendaWeek struct {
	WeekStart string      `json:"weekStart"`
	Days      []AgendaDay `json:"days"`
}

type AgendaMonthCell struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

type AgendaMonth struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Weeks [][]AgendaMonthCell `json:"weeks"`
	Total int                 `json:"total"`
}
