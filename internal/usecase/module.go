package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/campusfood/internal/adapter/sentiment"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewVendorUseCase,
	NewMenuUseCase,
	NewOrderUseCase,
	NewReviewUseCase,
	func(a *sentiment.Analyzer) SentimentAnalyzer { return a },
)
