package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// SentimentAnalyzer classifies review text. It never fails; degraded calls yield neutral.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) model.Sentiment
}

// ReviewUseCase runs the review submission pipeline.
type ReviewUseCase struct {
	orders   repository.OrderRepository
	reviews  repository.ReviewRepository
	tx       repository.Transactor
	analyzer SentimentAnalyzer
	logger   *zap.Logger
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(
	orders repository.OrderRepository,
	reviews repository.ReviewRepository,
	tx repository.Transactor,
	analyzer SentimentAnalyzer,
	logger *zap.Logger,
) *ReviewUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewUseCase{orders: orders, reviews: reviews, tx: tx, analyzer: analyzer, logger: logger}
}

// ReviewInput is a student review of a completed order.
type ReviewInput struct {
	OrderID int64
	Rating  int
	Comment string
}

// Submit stores the single review of a completed order and updates the vendor tallies.
// Classification finishes before the write transaction starts.
func (u *ReviewUseCase) Submit(ctx context.Context, studentID int64, in ReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domainErrors.ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, domainErrors.ErrEmptyComment
	}

	order, err := u.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.StudentID != studentID {
		return nil, domainErrors.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusCompleted {
		return nil, domainErrors.ErrReviewNotCompleted
	}
	if order.IsReviewed {
		return nil, domainErrors.ErrAlreadyReviewed
	}
	exists, err := u.reviews.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrAlreadyReviewed
	}

	sentiment := u.analyzer.Analyze(ctx, comment)

	var created *model.Review
	err = u.tx.WithinTransaction(ctx, func(f repository.Factory) error {
		var err error
		created, err = f.Reviews().Create(ctx, &model.Review{
			OrderID:   order.ID,
			StudentID: order.StudentID,
			VendorID:  order.VendorID,
			Rating:    in.Rating,
			Comment:   comment,
			Sentiment: sentiment,
		})
		if err != nil {
			return err
		}
		if err := f.Orders().MarkReviewed(ctx, order.ID); err != nil {
			return err
		}
		if !created.Sentiment.Determinate() {
			return nil
		}
		return f.Vendors().ApplySentiment(ctx, order.VendorID, created.Sentiment)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("review submitted",
		zap.Int64("review_id", created.ID),
		zap.Int64("order_id", order.ID),
		zap.Int64("vendor_id", order.VendorID),
		zap.String("sentiment", string(created.Sentiment)),
	)
	return created, nil
}

// VendorReviews lists classified reviews of the vendor, newest first.
func (u *ReviewUseCase) VendorReviews(ctx context.Context, vendorID int64, page model.Page) (model.Paginated[model.Review], error) {
	reviews, total, err := u.reviews.ListByVendor(ctx, vendorID, page)
	if err != nil {
		return model.Paginated[model.Review]{}, err
	}
	return model.NewPaginated(reviews, page, total), nil
}
