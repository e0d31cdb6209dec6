// Package reports genera los reportes descargables de la clínica en
// CSV (compatible con Excel) y PDF.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetclinic-admin/internal/domain/appointments"
	"vetclinic-admin/internal/domain/clinicservices"
	"vetclinic-admin/internal/domain/patients"
	"vetclinic-admin/internal/platform/export"
	"vetclinic-admin/internal/platform/pdf"
)

var ErrBadFormat = errors.New("unsupported report format")

// Format identifica el archivo de salida. EXCEL se sirve como CSV con
// BOM, que Excel abre sin asistente de importación.
type Format string

const (
	FormatCSV Format = "CSV"
	FormatPDF Format = "PDF"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "PDF":
		return FormatPDF, nil
	case "CSV", "EXCEL":
		return FormatCSV, nil
	default:
		return "", ErrBadFormat
	}
}

// File es un reporte ya serializado, listo para responder como blob.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type AppointmentSource interface {
	ListByRange(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error)
}

type PatientSource interface {
	List(ctx context.Context, f patients.ListFilter) ([]patients.Patient, int64, error)
}

type ServiceSource interface {
	List(ctx context.Context, f clinicservices.ListFilter) ([]clinicservices.ClinicService, int64, error)
}

type Service struct {
	appointments AppointmentSource
	patients     PatientSource
	services     ServiceSource
	now          func() time.Time
}

func NewService(a AppointmentSource, p PatientSource, s ServiceSource) *Service {
	return &Service{appointments: a, patients: p, services: s, now: time.Now}
}

// Appointments arma el reporte de citas del rango [from, to] inclusive.
func (s *Service) Appointments(ctx context.Context, from, to time.Time, format Format) (File, error) {
	items, err := s.appointments.ListByRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return File{}, err
	}

	headers := []string{"Fecha", "Hora", "Paciente", "Veterinario", "Tipo", "Estado", "Motivo"}
	rows := make([][]string, 0, len(items))
	for _, a := range items {
		rows = append(rows, []string{
			a.ScheduledDate.Format("2006-01-02"),
			a.ScheduledDate.Format("15:04"),
			a.PatientID,
			a.VeterinarianID,
			string(a.Type),
			string(a.Status),
			a.Reason,
		})
	}

	subtitle := fmt.Sprintf("Del %s al %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return s.render("citas", "Reporte de citas", subtitle, headers, rows, format)
}

// Patients arma el censo de pacientes registrados.
func (s *Service) Patients(ctx context.Context, format Format) (File, error) {
	items, _, err := s.patients.List(ctx, patients.ListFilter{Size: 10000})
	if err != nil {
		return File{}, err
	}

	headers := []string{"Nombre", "Especie", "Raza", "Sexo", "Edad (años)", "Propietario"}
	rows := make([][]string, 0, len(items))
	now := s.now()
	for _, p := range items {
		age := ""
		if p.BirthDate != nil {
			age = fmt.Sprintf("%d", p.AgeYears(now))
		}
		rows = append(rows, []string{
			p.Name,
			string(p.Species),
			p.Breed,
			string(p.Gender),
			age,
			p.OwnerID,
		})
	}

	return s.render("pacientes", "Censo de pacientes", "", headers, rows, format)
}

// ClinicServices arma el catálogo de servicios con precios.
func (s *Service) ClinicServices(ctx context.Context, format Format) (File, error) {
	items, _, err := s.services.List(ctx, clinicservices.ListFilter{Size: 10000})
	if err != nil {
		return File{}, err
	}

	headers := []string{"Servicio", "Categoría", "Precio", "Duración (min)", "Activo"}
	rows := make([][]string, 0, len(items))
	for _, cs := range items {
		active := "No"
		if cs.Active {
			active = "Sí"
		}
		rows = append(rows, []string{
			cs.Name,
			string(cs.Category),
			fmt.Sprintf("%.2f", cs.Price),
			fmt.Sprintf("%d", cs.DurationMinutes),
			active,
		})
	}

	return s.render("servicios", "Catálogo de servicios", "", headers, rows, format)
}

func (s *Service) render(slug, title, subtitle string, headers []string, rows [][]string, format Format) (File, error) {
	stamp := s.now().Format("20060102")

	switch format {
	case FormatCSV:
		body, err := export.CSV(headers, rows)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("%s_%s.csv", slug, stamp),
			ContentType: "text/csv; charset=utf-8",
			Body:        body,
		}, nil
	case FormatPDF:
		if subtitle == "" {
			subtitle = "Generado el " + s.now().Format("2006-01-02 15:04")
		}
		body, err := pdf.Render(pdf.Table{
			Title:    title,
			Subtitle: subtitle,
			Headers:  headers,
			Rows:     rows,
		})
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("%s_%s.pdf", slug, stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	default:
		return File{}, ErrBadFormat
	}
}
