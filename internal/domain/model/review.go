package model

import (
	"strings"
	"time"
)

// Sentiment is the classification of review text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPending  Sentiment = "pending"
)

// Determinate reports whether s is one of the three classified labels.
func (s Sentiment) Determinate() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// SentimentFromLabel normalizes a classifier label. Unknown labels are neutral.
func SentimentFromLabel(label string) Sentiment {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "pos"):
		return SentimentPositive
	case strings.Contains(l, "neg"):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Review is the single review a student leaves for a completed order.
type Review struct {
	ID          int64
	OrderID     int64
	StudentID   int64
	VendorID    int64
	StudentName string
	Rating      int
	Comment     string
	Sentiment   Sentiment
	CreatedAt   time.Time
}
