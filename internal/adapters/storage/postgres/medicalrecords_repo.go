package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/medicalrecords"
)

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

const medicalRecordColumns = `
	id, patient_id, veterinarian_id, record_date,
	symptoms, diagnosis, treatment,
	weight_kg, temperature_c, heart_rate,
	follow_up_required, follow_up_date, notes,
	created_at, updated_at`

func (r *MedicalRecordsRepo) Create(ctx context.Context, rec medicalrecords.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (`+medicalRecordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		rec.ID, rec.PatientID, rec.VeterinarianID, rec.RecordDate,
		rec.Symptoms, rec.Diagnosis, rec.Treatment,
		rec.Vitals.WeightKg, rec.Vitals.TemperatureC, rec.Vitals.HeartRate,
		rec.FollowUpRequired, toNullTime(rec.FollowUpDate), rec.Notes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

func (r *MedicalRecordsRepo) Update(ctx context.Context, rec medicalrecords.MedicalRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET
			record_date = $2,
			symptoms = $3,
			diagnosis = $4,
			treatment = $5,
			weight_kg = $6,
			temperature_c = $7,
			heart_rate = $8,
			follow_up_required = $9,
			follow_up_date = $10,
			notes = $11,
			updated_at = $12
		WHERE id = $1
	`,
		rec.ID, rec.RecordDate,
		rec.Symptoms, rec.Diagnosis, rec.Treatment,
		rec.Vitals.WeightKg, rec.Vitals.TemperatureC, rec.Vitals.HeartRate,
		rec.FollowUpRequired, toNullTime(rec.FollowUpDate), rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicalrecords.ErrNotFound
	}
	return nil
}

func (r *MedicalRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicalrecords.ErrNotFound
	}
	return nil
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.MedicalRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanMedicalRecord(row)
}

func (r *MedicalRecordsRepo) List(ctx context.Context, f medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM medical_records
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR veterinarian_id = $2)
	`, f.PatientID, f.VeterinarianID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR veterinarian_id = $2)
		ORDER BY record_date DESC
		LIMIT $3 OFFSET $4
	`, f.PatientID, f.VeterinarianID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medicalrecords.MedicalRecord, 0)
	for rows.Next() {
		rec, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

func scanMedicalRecord(row rowScanner) (medicalrecords.MedicalRecord, error) {
	var rec medicalrecords.MedicalRecord
	var followUp sql.NullTime
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.VeterinarianID, &rec.RecordDate,
		&rec.Symptoms, &rec.Diagnosis, &rec.Treatment,
		&rec.Vitals.WeightKg, &rec.Vitals.TemperatureC, &rec.Vitals.HeartRate,
		&rec.FollowUpRequired, &followUp, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return medicalrecords.MedicalRecord{}, medicalrecords.ErrNotFound
	}
	if err != nil {
		return medicalrecords.MedicalRecord{}, err
	}
	rec.FollowUpDate = fromNullTime(followUp)
	return rec, nil
}
