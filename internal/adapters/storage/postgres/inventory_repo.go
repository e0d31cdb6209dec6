package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetclinic-admin/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

const inventoryColumns = `
	id, name, category, description,
	quantity, min_quantity, unit_price, supplier, expiration_date,
	created_at, updated_at`

func (r *InventoryRepo) Create(ctx context.Context, item inventory.InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items (`+inventoryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		item.ID, item.Name, item.Category, item.Description,
		item.Quantity, item.MinQuantity, item.UnitPrice, item.Supplier, toNullTime(item.ExpirationDate),
		item.CreatedAt, item.UpdatedAt,
	)
	return err
}

func (r *InventoryRepo) Update(ctx context.Context, item inventory.InventoryItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET
			name = $2,
			category = $3,
			description = $4,
			quantity = $5,
			min_quantity = $6,
			unit_price = $7,
			supplier = $8,
			expiration_date = $9,
			updated_at = $10
		WHERE id = $1
	`,
		item.ID, item.Name, item.Category, item.Description,
		item.Quantity, item.MinQuantity, item.UnitPrice, item.Supplier, toNullTime(item.ExpirationDate),
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (inventory.InventoryItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE id = $1
	`, strings.TrimSpace(id))
	return scanInventoryItem(row)
}

func (r *InventoryRepo) List(ctx context.Context, f inventory.ListFilter) ([]inventory.InventoryItem, int64, error) {
	search := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM inventory_items
		WHERE ($1 = '' OR category = $1)
			AND ($2 = '%%' OR lower(name || ' ' || supplier) LIKE $2)
	`, string(f.Category), search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(f.Page, f.Size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE ($1 = '' OR category = $1)
			AND ($2 = '%%' OR lower(name || ' ' || supplier) LIKE $2)
		ORDER BY name ASC
		LIMIT $3 OFFSET $4
	`, string(f.Category), search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]inventory.InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, rows.Err()
}

func scanInventoryItem(row rowScanner) (inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	var exp sql.NullTime
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Description,
		&item.Quantity, &item.MinQuantity, &item.UnitPrice, &item.Supplier, &exp,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return inventory.InventoryItem{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.InventoryItem{}, err
	}
	item.ExpirationDate = fromNullTime(exp)
	return item, nil
}
