package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// roles se guarda como text[] de Postgres; va y viene como el literal
// {A,B} para no depender de tipos del driver.
const userColumns = `
	id, username, email, first_name, last_name,
	password_hash, roles, active,
	created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName,
		u.PasswordHash, encodeRoles(u.Roles), u.Active,
		u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			email = $2,
			first_name = $3,
			last_name = $4,
			password_hash = $5,
			roles = $6,
			active = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID, u.Email, u.FirstName, u.LastName,
		u.PasswordHash, encodeRoles(u.Roles), u.Active,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, strings.TrimSpace(id))
	return scanUser(row)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context, f users.ListFilter) ([]users.User, int64, error) {
	search := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
	role := strings.TrimSpace(f.Role)

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM users
		WHERE ($1 = '' OR roles::text LIKE '%' || $1 || '%')
			AND ($2 = '%%' OR lower(username || ' ' || email || ' ' || first_name || ' ' || last_name) LIKE $2)
	`, role, search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE ($1 = '' OR roles::text LIKE '%' || $1 || '%')
			AND ($2 = '%%' OR lower(username || ' ' || email || ' ' || first_name || ' ' || last_name) LIKE $2)
		ORDER BY username ASC
		LIMIT $3 OFFSET $4
	`, role, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var roles string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &roles, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	u.Roles = decodeRoles(roles)
	return u, nil
}

func encodeRoles(roles []string) string {
	return "{" + strings.Join(roles, ",") + "}"
}

func decodeRoles(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "{}")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(strings.TrimSpace(p), `"`); p != "" {
			out = append(out, p)
		}
	}
	return out
}
