package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"vetclinic-admin/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, patient_id, veterinarian_id,
	scheduled_date, duration_minutes,
	type, status, reason, notes,
	created_at, updated_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID, a.PatientID, a.VeterinarianID,
		a.ScheduledDate, a.DurationMinutes,
		a.Type, a.Status, a.Reason, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			patient_id = $2,
			veterinarian_id = $3,
			scheduled_date = $4,
			duration_minutes = $5,
			type = $6,
			status = $7,
			reason = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID, a.PatientID, a.VeterinarianID,
		a.ScheduledDate, a.DurationMinutes,
		a.Type, a.Status, a.Reason, a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanAppointment(row)
}

// filtro común: rango [From, To) sobre scheduled_date.
const appointmentWhere = `
	WHERE ($1 = '' OR patient_id = $1)
		AND ($2 = '' OR veterinarian_id = $2)
		AND ($3 = '' OR status = $3)
		AND ($4::timestamptz IS NULL OR scheduled_date >= $4)
		AND ($5::timestamptz IS NULL OR scheduled_date < $5)`

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, int64, error) {
	from, to := rangeArgs(f.From, f.To)

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM appointments `+appointmentWhere,
		f.PatientID, f.VeterinarianID, string(f.Status), from, to,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments `+appointmentWhere+`
		ORDER BY scheduled_date ASC
		LIMIT $6 OFFSET $7
	`, f.PatientID, f.VeterinarianID, string(f.Status), from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *AppointmentsRepo) Count(ctx context.Context, f appointments.ListFilter) (int64, error) {
	from, to := rangeArgs(f.From, f.To)

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM appointments `+appointmentWhere,
		f.PatientID, f.VeterinarianID, string(f.Status), from, to,
	).Scan(&total)
	return total, err
}

func rangeArgs(from, to time.Time) (any, any) {
	var f, t any
	if !from.IsZero() {
		f = from
	}
	if !to.IsZero() {
		t = to
	}
	return f, t
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	err := row.Scan(
		&a.ID, &a.PatientID, &a.VeterinarianID,
		&a.ScheduledDate, &a.DurationMinutes,
		&a.Type, &a.Status, &a.Reason, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}
