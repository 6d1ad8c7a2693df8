package model

import (
	"regexp"
	"time"
)

const (
	DefaultOpeningHours = "09:00"
	DefaultClosingHours = "17:00"
)

var hoursPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidHours reports whether value is a HH:MM clock time.
func ValidHours(value string) bool {
	return hoursPattern.MatchString(value)
}

// ReviewSummary holds per-vendor sentiment tallies.
type ReviewSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Total    int `json:"total"`
}

// Apply adds a single classified review to the tallies.
func (s *ReviewSummary) Apply(sentiment Sentiment) bool {
	switch sentiment {
	case SentimentPositive:
		s.Positive++
	case SentimentNeutral:
		s.Neutral++
	case SentimentNegative:
		s.Negative++
	default:
		return false
	}
	s.Total++
	return true
}

// Consistent reports whether total matches the sum of the buckets.
func (s ReviewSummary) Consistent() bool {
	return s.Total == s.Positive+s.Neutral+s.Negative
}

// Vendor is a food stall.
type Vendor struct {
	ID            int64
	Email         string
	PasswordHash  string
	StallName     string
	Description   string
	Phone         string
	IsOpen        bool
	OpeningHours  string
	ClosingHours  string
	ReviewSummary ReviewSummary
	CreatedAt     time.Time
}

// IsOpenAt reports whether the vendor accepts orders at t.
func (v *Vendor) IsOpenAt(t time.Time) bool {
	if !v.IsOpen {
		return false
	}
	now := t.Format("15:04")
	return now >= v.OpeningHours && now <= v.ClosingHours
}

// Availability carries a partial update of vendor opening settings.
type Availability struct {
	IsOpen       *bool
	OpeningHours *string
	ClosingHours *string
}

// VendorStats is the vendor dashboard summary.
type VendorStats struct {
	TotalOrders        int
	PendingOrders      int
	CompletedOrders    int
	RejectedOrders     int
	TotalIncome        float64
	RecentIncome       float64
	RecentOrders       int
	TotalMenuItems     int
	AvailableMenuItems int
	AverageRating      float64
	ReviewSummary      ReviewSummary
}
