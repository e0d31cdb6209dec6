package clinicservices

import (
	"strings"
	"time"
)

// ServiceCategory agrupa los servicios del catálogo de la clínica.
type ServiceCategory string

const (
	CategoryConsultation ServiceCategory = "CONSULTATION"
	CategoryVaccination  ServiceCategory = "VACCINATION"
	CategorySurgery      ServiceCategory = "SURGERY"
	CategoryGrooming     ServiceCategory = "GROOMING"
	CategoryLaboratory   ServiceCategory = "LABORATORY"
	CategoryOther        ServiceCategory = "OTHER"
)

// NormalizeCategory acepta los valores en inglés y los sinónimos en
// español que usan las recepcionistas; lo desconocido cae en OTHER.
func NormalizeCategory(raw string) ServiceCategory {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CONSULTATION", "CONSULTA":
		return CategoryConsultation
	case "VACCINATION", "VACUNACION", "VACUNACIÓN", "VACUNA":
		return CategoryVaccination
	case "SURGERY", "CIRUGIA", "CIRUGÍA":
		return CategorySurgery
	case "GROOMING", "ESTETICA", "ESTÉTICA", "PELUQUERIA", "PELUQUERÍA":
		return CategoryGrooming
	case "LABORATORY", "LABORATORIO", "EXAMEN":
		return CategoryLaboratory
	default:
		return CategoryOther
	}
}

// ClinicService es una entrada del catálogo de servicios con precio y
// duración estimada. Los servicios inactivos no se ofrecen al agendar.
type ClinicService struct {
	ID              string
	Name            string
	Description     string
	Category        ServiceCategory
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
