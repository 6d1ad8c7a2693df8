package dto

import (
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// VendorResponse is the public vendor profile.
type VendorResponse struct {
	ID            int64               `json:"id"`
	Email         string              `json:"email"`
	StallName     string              `json:"stallName"`
	Description   string              `json:"description,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	IsOpen        bool                `json:"isOpen"`
	OpeningHours  string              `json:"openingHours"`
	ClosingHours  string              `json:"closingHours"`
	ReviewSummary model.ReviewSummary `json:"reviewSummary"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// AvailabilityRequest is a partial update of the opening window.
type AvailabilityRequest struct {
	IsOpen       *bool   `json:"isOpen"`
	OpeningHours *string `json:"openingHours"`
	ClosingHours *string `json:"closingHours"`
}

// StatsResponse is the vendor dashboard payload.
type StatsResponse struct {
	TotalOrders        int                 `json:"totalOrders"`
	PendingOrders      int                 `json:"pendingOrders"`
	CompletedOrders    int                 `json:"completedOrders"`
	RejectedOrders     int                 `json:"rejectedOrders"`
	TotalIncome        float64             `json:"totalIncome"`
	RecentIncome       float64             `json:"recentIncome"`
	RecentOrders       int                 `json:"recentOrders"`
	TotalMenuItems     int                 `json:"totalMenuItems"`
	AvailableMenuItems int                 `json:"availableMenuItems"`
	AverageRating      float64             `json:"averageRating"`
	ReviewSummary      model.ReviewSummary `json:"reviewSummary"`
}

// NewVendorResponse converts a vendor into its public shape.
func NewVendorResponse(v *model.Vendor) VendorResponse {
	return VendorResponse{
		ID:            v.ID,
		Email:         v.Email,
		StallName:     v.StallName,
		Description:   v.Description,
		Phone:         v.Phone,
		IsOpen:        v.IsOpen,
		OpeningHours:  v.OpeningHours,
		ClosingHours:  v.ClosingHours,
		ReviewSummary: v.ReviewSummary,
		CreatedAt:     v.CreatedAt,
	}
}

// NewStatsResponse converts dashboard figures.
func NewStatsResponse(s *model.VendorStats) StatsResponse {
	return StatsResponse(*s)
}
