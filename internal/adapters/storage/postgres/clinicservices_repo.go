package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/clinicservices"
)

type ClinicServicesRepo struct {
	db *sql.DB
}

func NewClinicServicesRepo(db *sql.DB) *ClinicServicesRepo {
	return &ClinicServicesRepo{db: db}
}

const clinicServiceColumns = `
	id, name, description, category,
	price, duration_minutes, active,
	created_at, updated_at`

func (r *ClinicServicesRepo) Create(ctx context.Context, s clinicservices.ClinicService) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_services (`+clinicServiceColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID, s.Name, s.Description, s.Category,
		s.Price, s.DurationMinutes, s.Active,
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *ClinicServicesRepo) Update(ctx context.Context, s clinicservices.ClinicService) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clinic_services
		SET
			name = $2,
			description = $3,
			category = $4,
			price = $5,
			duration_minutes = $6,
			active = $7,
			updated_at = $8
		WHERE id = $1
	`,
		s.ID, s.Name, s.Description, s.Category,
		s.Price, s.DurationMinutes, s.Active,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinicservices.ErrNotFound
	}
	return nil
}

func (r *ClinicServicesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clinic_services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinicservices.ErrNotFound
	}
	return nil
}

func (r *ClinicServicesRepo) GetByID(ctx context.Context, id string) (clinicservices.ClinicService, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+clinicServiceColumns+`
		FROM clinic_services
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanClinicService(row)
}

func (r *ClinicServicesRepo) List(ctx context.Context, f clinicservices.ListFilter) ([]clinicservices.ClinicService, int64, error) {
	search := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM clinic_services
		WHERE ($1 = '' OR category = $1)
			AND (NOT $2 OR active)
			AND ($3 = '%%' OR lower(name) LIKE $3)
	`, string(f.Category), f.OnlyActive, search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clinicServiceColumns+`
		FROM clinic_services
		WHERE ($1 = '' OR category = $1)
			AND (NOT $2 OR active)
			AND ($3 = '%%' OR lower(name) LIKE $3)
		ORDER BY name ASC
		LIMIT $4 OFFSET $5
	`, string(f.Category), f.OnlyActive, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]clinicservices.ClinicService, 0)
	for rows.Next() {
		s, err := scanClinicService(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func scanClinicService(row rowScanner) (clinicservices.ClinicService, error) {
	var s clinicservices.ClinicService
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Category,
		&s.Price, &s.DurationMinutes, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return clinicservices.ClinicService{}, clinicservices.ErrNotFound
	}
	if err != nil {
		return clinicservices.ClinicService{}, err
	}
	return s, nil
}
