package dto

import (
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// ReviewRequest is the review submission payload.
type ReviewRequest struct {
	OrderID int64  `json:"orderId" binding:"required"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse describes a review.
type ReviewResponse struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	StudentID   int64           `json:"studentId"`
	VendorID    int64           `json:"vendorId"`
	StudentName string          `json:"studentName,omitempty"`
	Rating      int             `json:"rating"`
	Comment     string          `json:"comment"`
	Sentiment   model.Sentiment `json:"sentiment"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewReviewResponse converts a review into its public shape.
func NewReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		OrderID:     r.OrderID,
		StudentID:   r.StudentID,
		VendorID:    r.VendorID,
		StudentName: r.StudentName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Sentiment:   r.Sentiment,
		CreatedAt:   r.CreatedAt,
	}
}
