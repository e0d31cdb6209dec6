package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/prescriptions"
)

type PrescriptionsRepo struct {
	db *sql.DB
}

func NewPrescriptionsRepo(db *sql.DB) *PrescriptionsRepo {
	return &PrescriptionsRepo{db: db}
}

const prescriptionColumns = `
	id, medical_record_id, patient_id, medication_id, medication_name,
	dosage, frequency, duration,
	start_date, end_date, instructions,
	created_at, updated_at`

func (r *PrescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prescriptions (`+prescriptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID, p.MedicalRecordID, p.PatientID, p.MedicationID, p.MedicationName,
		p.Dosage, p.Frequency, p.Duration,
		p.StartDate, p.EndDate, p.Instructions,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PrescriptionsRepo) Update(ctx context.Context, p prescriptions.Prescription) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE prescriptions
		SET
			dosage = $2,
			frequency = $3,
			duration = $4,
			start_date = $5,
			end_date = $6,
			instructions = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Dosage, p.Frequency, p.Duration,
		p.StartDate, p.EndDate, p.Instructions,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return prescriptions.ErrNotFound
	}
	return nil
}

func (r *PrescriptionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return prescriptions.ErrNotFound
	}
	return nil
}

func (r *PrescriptionsRepo) GetByID(ctx context.Context, id string) (prescriptions.Prescription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanPrescription(row)
}

func (r *PrescriptionsRepo) List(ctx context.Context, f prescriptions.ListFilter) ([]prescriptions.Prescription, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM prescriptions
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR medical_record_id = $2)
	`, f.PatientID, f.MedicalRecordID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR medical_record_id = $2)
		ORDER BY start_date DESC
		LIMIT $3 OFFSET $4
	`, f.PatientID, f.MedicalRecordID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]prescriptions.Prescription, 0)
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func scanPrescription(row rowScanner) (prescriptions.Prescription, error) {
	var p prescriptions.Prescription
	err := row.Scan(
		&p.ID, &p.MedicalRecordID, &p.PatientID, &p.MedicationID, &p.MedicationName,
		&p.Dosage, &p.Frequency, &p.Duration,
		&p.StartDate, &p.EndDate, &p.Instructions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return prescriptions.Prescription{}, prescriptions.ErrNotFound
	}
	if err != nil {
		return prescriptions.Prescription{}, err
	}
	return p, nil
}
