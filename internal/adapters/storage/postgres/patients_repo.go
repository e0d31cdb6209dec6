package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

const patientColumns = `
	id, name, species, breed, gender,
	birth_date, weight_kg, microchip, notes, owner_id,
	created_at, updated_at`

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID, p.Name, p.Species, p.Breed, p.Gender,
		toNullTime(p.BirthDate), p.WeightKg, p.Microchip, p.Notes, p.OwnerID,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			name = $2,
			species = $3,
			breed = $4,
			gender = $5,
			birth_date = $6,
			weight_kg = $7,
			microchip = $8,
			notes = $9,
			owner_id = $10,
			updated_at = $11
		WHERE id = $1
	`,
		p.ID, p.Name, p.Species, p.Breed, p.Gender,
		toNullTime(p.BirthDate), p.WeightKg, p.Microchip, p.Notes, p.OwnerID,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanPatient(row)
}

func (r *PatientsRepo) List(ctx context.Context, f patients.ListFilter) ([]patients.Patient, int64, error) {
	search := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM patients
		WHERE ($1 = '' OR owner_id = $1)
			AND ($2 = '' OR species = $2)
			AND ($3 = '%%' OR lower(name || ' ' || breed) LIKE $3)
	`, f.OwnerID, f.Species, search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE ($1 = '' OR owner_id = $1)
			AND ($2 = '' OR species = $2)
			AND ($3 = '%%' OR lower(name || ' ' || breed) LIKE $3)
		ORDER BY created_at ASC
		LIMIT $4 OFFSET $5
	`, f.OwnerID, f.Species, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PatientsRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM patients`).Scan(&total)
	return total, err
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var bd sql.NullTime
	err := row.Scan(
		&p.ID, &p.Name, &p.Species, &p.Breed, &p.Gender,
		&bd, &p.WeightKg, &p.Microchip, &p.Notes, &p.OwnerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return patients.Patient{}, patients.ErrNotFound
	}
	if err != nil {
		return patients.Patient{}, err
	}
	p.BirthDate = fromNullTime(bd)
	return p, nil
}
