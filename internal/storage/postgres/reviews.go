package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

type reviewRepository struct {
	db querier
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	sentiment := review.Sentiment
	if sentiment == "" {
		sentiment = model.SentimentPending
	}
	const query = `INSERT INTO reviews (order_id, student_id, vendor_id, rating, comment, sentiment)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	created := *review
	created.Sentiment = sentiment
	err := r.db.QueryRow(ctx, query,
		review.OrderID, review.StudentID, review.VendorID, review.Rating, review.Comment, sentiment,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyReviewed
		}
		return nil, err
	}
	return &created, nil
}

func (r *reviewRepository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE order_id=$1)`, orderID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorID int64, page model.Page) ([]model.Review, int, error) {
	var total int
	const countQuery = `SELECT COUNT(*) FROM reviews WHERE vendor_id=$1 AND sentiment <> 'pending'`
	if err := r.db.QueryRow(ctx, countQuery, vendorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT r.id, r.order_id, r.student_id, r.vendor_id, s.name, r.rating, r.comment, r.sentiment, r.created_at
                   FROM reviews r JOIN students s ON s.id = r.student_id
                   WHERE r.vendor_id=$1 AND r.sentiment <> 'pending'
                   ORDER BY r.created_at DESC, r.id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, vendorID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.OrderID, &rv.StudentID, &rv.VendorID, &rv.StudentName,
			&rv.Rating, &rv.Comment, &rv.Sentiment, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
