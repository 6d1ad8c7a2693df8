package sentiment

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/config"
	"github.com/polkiloo/campusfood/internal/pkg/retry"
)

// Module exposes the classifier client and the retrying analyzer to fx graph.
var Module = fx.Provide(newClient, newAnalyzer)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.SentimentAPIURL, p.Config.SentimentAPIKey, p.Config.SentimentTimeout, p.Logger.Named("sentiment"))
}

type analyzerParams struct {
	fx.In

	Client Client
	Config *config.Config
	Logger *zap.Logger
}

func newAnalyzer(p analyzerParams) *Analyzer {
	policy := retry.Policy{
		MaxAttempts: p.Config.SentimentMaxAttempts,
		BaseDelay:   p.Config.SentimentBaseDelay,
	}
	return NewAnalyzer(p.Client, policy, p.Logger.Named("sentiment"))
}
