package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/consents"
)

type ConsentsRepo struct {
	db *sql.DB
}

func NewConsentsRepo(db *sql.DB) *ConsentsRepo {
	return &ConsentsRepo{db: db}
}

const consentColumns = `
	id, patient_id, owner_id,
	procedure_type, title, content,
	status, signed_at, signed_by,
	created_at, updated_at`

func (r *ConsentsRepo) Create(ctx context.Context, c consents.InformedConsent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO informed_consents (`+consentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		c.ID, c.PatientID, c.OwnerID,
		c.ProcedureType, c.Title, c.Content,
		c.Status, toNullTime(c.SignedAt), c.SignedBy,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ConsentsRepo) Update(ctx context.Context, c consents.InformedConsent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE informed_consents
		SET
			procedure_type = $2,
			title = $3,
			content = $4,
			status = $5,
			signed_at = $6,
			signed_by = $7,
			updated_at = $8
		WHERE id = $1
	`,
		c.ID,
		c.ProcedureType, c.Title, c.Content,
		c.Status, toNullTime(c.SignedAt), c.SignedBy,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return consents.ErrNotFound
	}
	return nil
}

func (r *ConsentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM informed_consents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return consents.ErrNotFound
	}
	return nil
}

func (r *ConsentsRepo) GetByID(ctx context.Context, id string) (consents.InformedConsent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+consentColumns+`
		FROM informed_consents
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanConsent(row)
}

func (r *ConsentsRepo) List(ctx context.Context, f consents.ListFilter) ([]consents.InformedConsent, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM informed_consents
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR owner_id = $2)
			AND ($3 = '' OR status = $3)
	`, f.PatientID, f.OwnerID, string(f.Status)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+consentColumns+`
		FROM informed_consents
		WHERE ($1 = '' OR patient_id = $1)
			AND ($2 = '' OR owner_id = $2)
			AND ($3 = '' OR status = $3)
		ORDER BY created_at ASC
		LIMIT $4 OFFSET $5
	`, f.PatientID, f.OwnerID, string(f.Status), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]consents.InformedConsent, 0)
	for rows.Next() {
		c, err := scanConsent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func scanConsent(row rowScanner) (consents.InformedConsent, error) {
	var c consents.InformedConsent
	var signedAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.PatientID, &c.OwnerID,
		&c.ProcedureType, &c.Title, &c.Content,
		&c.Status, &signedAt, &c.SignedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return consents.InformedConsent{}, consents.ErrNotFound
	}
	if err != nil {
		return consents.InformedConsent{}, err
	}
	c.SignedAt = fromNullTime(signedAt)
	return c, nil
}
