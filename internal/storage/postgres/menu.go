package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

type menuRepository struct {
	db querier
}

const menuColumns = `id, vendor_id, name, price, description, image_url, category, is_available, created_at, updated_at`

func scanMenuItem(row scanner) (*model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(&m.ID, &m.VendorID, &m.Name, &m.Price, &m.Description, &m.ImageURL, &m.Category, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (vendor_id, name, price, description, image_url, category, is_available)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + menuColumns
	return scanMenuItem(r.db.QueryRow(ctx, query,
		item.VendorID, item.Name, item.Price, item.Description, item.ImageURL, item.Category, item.IsAvailable,
	))
}

func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	const query = `UPDATE menu_items
                   SET name=$3, price=$4, description=$5, image_url=$6, category=$7, is_available=$8, updated_at=NOW()
                   WHERE id=$1 AND vendor_id=$2
                   RETURNING ` + menuColumns
	updated, err := scanMenuItem(r.db.QueryRow(ctx, query,
		item.ID, item.VendorID, item.Name, item.Price, item.Description, item.ImageURL, item.Category, item.IsAvailable,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrMenuItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *menuRepository) Delete(ctx context.Context, vendorID, itemID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1 AND vendor_id=$2`, itemID, vendorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, vendorID, itemID int64) (*model.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id=$1 AND vendor_id=$2`, itemID, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *menuRepository) ListByVendor(ctx context.Context, vendorID int64, onlyAvailable bool) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE vendor_id=$1`
	if onlyAvailable {
		query += ` AND is_available`
	}
	query += ` ORDER BY category, name, id`
	return r.list(ctx, query, vendorID)
}

func (r *menuRepository) FindByIDs(ctx context.Context, vendorID int64, ids []int64) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + menuColumns + ` FROM menu_items WHERE vendor_id=$1 AND id = ANY($2) ORDER BY id`
	return r.list(ctx, query, vendorID, ids)
}

func (r *menuRepository) list(ctx context.Context, query string, args ...any) ([]model.MenuItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
