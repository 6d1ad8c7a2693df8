package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

type vendorRepository struct {
	db querier
}

const vendorColumns = `id, email, password_hash, stall_name, description, phone, is_open, opening_hours, closing_hours,
       review_positive, review_neutral, review_negative, review_total, created_at`

func scanVendor(row scanner) (*model.Vendor, error) {
	var v model.Vendor
	err := row.Scan(
		&v.ID, &v.Email, &v.PasswordHash, &v.StallName, &v.Description, &v.Phone, &v.IsOpen, &v.OpeningHours, &v.ClosingHours,
		&v.ReviewSummary.Positive, &v.ReviewSummary.Neutral, &v.ReviewSummary.Negative, &v.ReviewSummary.Total, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	const query = `INSERT INTO vendors (email, password_hash, stall_name, description, phone, is_open, opening_hours, closing_hours)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	created := *vendor
	created.ReviewSummary = model.ReviewSummary{}
	err := r.db.QueryRow(ctx, query,
		vendor.Email, vendor.PasswordHash, vendor.StallName, vendor.Description, vendor.Phone,
		vendor.IsOpen, vendor.OpeningHours, vendor.ClosingHours,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrVendorExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *vendorRepository) GetByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	return r.get(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE email=$1`, email)
}

func (r *vendorRepository) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	return r.get(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id=$1`, id)
}

func (r *vendorRepository) get(ctx context.Context, query string, arg any) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrVendorNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *vendorRepository) List(ctx context.Context) ([]model.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY stall_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *vendorRepository) UpdateAvailability(ctx context.Context, vendorID int64, availability model.Availability) (*model.Vendor, error) {
	const query = `UPDATE vendors
                   SET is_open = COALESCE($2, is_open),
                       opening_hours = COALESCE($3, opening_hours),
                       closing_hours = COALESCE($4, closing_hours)
                   WHERE id=$1
                   RETURNING ` + vendorColumns
	v, err := scanVendor(r.db.QueryRow(ctx, query, vendorID, availability.IsOpen, availability.OpeningHours, availability.ClosingHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrVendorNotFound
		}
		return nil, err
	}
	return v, nil
}

// sentimentColumns maps a determinate sentiment onto its tally column.
var sentimentColumns = map[model.Sentiment]string{
	model.SentimentPositive: "review_positive",
	model.SentimentNeutral:  "review_neutral",
	model.SentimentNegative: "review_negative",
}

func (r *vendorRepository) ApplySentiment(ctx context.Context, vendorID int64, sentiment model.Sentiment) error {
	column, ok := sentimentColumns[sentiment]
	if !ok {
		return domainErrors.Validation("unsupported sentiment " + string(sentiment))
	}
	query := `UPDATE vendors SET ` + column + ` = ` + column + ` + 1, review_total = review_total + 1 WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, vendorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepository) Stats(ctx context.Context, vendorID int64, since time.Time) (*model.VendorStats, error) {
	vendor, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	stats := model.VendorStats{ReviewSummary: vendor.ReviewSummary}

	const ordersQuery = `SELECT COUNT(*),
                                COUNT(*) FILTER (WHERE status='Pending'),
                                COUNT(*) FILTER (WHERE status='Completed'),
                                COUNT(*) FILTER (WHERE status='Rejected'),
                                COALESCE(SUM(total_price) FILTER (WHERE status='Completed'), 0),
                                COALESCE(SUM(total_price) FILTER (WHERE status='Completed' AND created_at >= $2), 0),
                                COUNT(*) FILTER (WHERE created_at >= $2)
                         FROM orders WHERE vendor_id=$1`
	err = r.db.QueryRow(ctx, ordersQuery, vendorID, since).Scan(
		&stats.TotalOrders, &stats.PendingOrders, &stats.CompletedOrders, &stats.RejectedOrders,
		&stats.TotalIncome, &stats.RecentIncome, &stats.RecentOrders,
	)
	if err != nil {
		return nil, err
	}

	const menuQuery = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_available) FROM menu_items WHERE vendor_id=$1`
	if err := r.db.QueryRow(ctx, menuQuery, vendorID).Scan(&stats.TotalMenuItems, &stats.AvailableMenuItems); err != nil {
		return nil, err
	}

	const ratingQuery = `SELECT COALESCE(AVG(rating), 0)::DOUBLE PRECISION FROM reviews WHERE vendor_id=$1 AND sentiment <> 'pending'`
	if err := r.db.QueryRow(ctx, ratingQuery, vendorID).Scan(&stats.AverageRating); err != nil {
		return nil, err
	}

	return &stats, nil
}
