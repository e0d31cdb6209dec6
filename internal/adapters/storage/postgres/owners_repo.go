package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `
	id, document_type, document_number,
	first_name, last_name,
	email, phone, address, city, notes, user_id,
	created_at, updated_at`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		o.ID, o.DocumentType, o.DocumentNumber,
		o.FirstName, o.LastName,
		o.Email, o.Phone, o.Address, o.City, o.Notes, o.UserID,
		o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			document_type = $2,
			document_number = $3,
			first_name = $4,
			last_name = $5,
			email = $6,
			phone = $7,
			address = $8,
			city = $9,
			notes = $10,
			user_id = $11,
			updated_at = $12
		WHERE id = $1
	`,
		o.ID, o.DocumentType, o.DocumentNumber,
		o.FirstName, o.LastName,
		o.Email, o.Phone, o.Address, o.City, o.Notes, o.UserID,
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanOwner(row)
}

func (r *OwnersRepo) GetByUserID(ctx context.Context, userID string) (owners.Owner, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return owners.Owner{}, owners.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE user_id = $1
	`, userID)
	return scanOwner(row)
}

func (r *OwnersRepo) List(ctx context.Context, f owners.ListFilter) ([]owners.Owner, int64, error) {
	search := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM owners
		WHERE ($1 = '%%'
			OR lower(first_name || ' ' || last_name) LIKE $1
			OR lower(document_number) LIKE $1
			OR lower(email) LIKE $1)
	`, search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE ($1 = '%%'
			OR lower(first_name || ' ' || last_name) LIKE $1
			OR lower(document_number) LIKE $1
			OR lower(email) LIKE $1)
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (owners.Owner, error) {
	var o owners.Owner
	err := row.Scan(
		&o.ID, &o.DocumentType, &o.DocumentNumber,
		&o.FirstName, &o.LastName,
		&o.Email, &o.Phone, &o.Address, &o.City, &o.Notes, &o.UserID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return owners.Owner{}, owners.ErrNotFound
	}
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

// limitOffset traduce paginación cero-based a LIMIT/OFFSET; size <= 0
// significa sin límite.
func limitOffset(page, size int) (int, int) {
	if size <= 0 {
		return 1 << 30, 0
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}
