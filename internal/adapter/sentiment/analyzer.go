package sentiment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/pkg/retry"
)

// Analyzer turns review text into a determinate sentiment. It never fails:
// when the service cannot answer it falls back to neutral and logs why.
type Analyzer struct {
	client Client
	policy retry.Policy
	logger *zap.Logger
}

// NewAnalyzer wraps client with the retry policy.
func NewAnalyzer(client Client, policy retry.Policy, logger *zap.Logger) *Analyzer {
	return &Analyzer{client: client, policy: policy, logger: logger}
}

// Analyze classifies text. Caller cancellation does not interrupt the attempts or the backoff.
func (a *Analyzer) Analyze(ctx context.Context, text string) model.Sentiment {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()

	result, err := retry.Do(ctx, a.policy, func(ctx context.Context, attempt int) (model.Sentiment, error) {
		s, err := a.client.Classify(ctx, text)
		if err != nil {
			a.logger.Debug("sentiment attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			if !retryable(err) {
				return model.SentimentPending, retry.Permanent(err)
			}
			return model.SentimentPending, err
		}
		if !s.Determinate() {
			return model.SentimentPending, errors.New("classifier returned undetermined sentiment")
		}
		return s, nil
	})
	if err != nil {
		a.logger.Warn("sentiment classification degraded to neutral",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(started)),
		)
		return model.SentimentNeutral
	}
	return result
}

// retryable treats transport failures and temporary statuses as transient.
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return !errors.Is(err, ErrMalformedResponse)
}
