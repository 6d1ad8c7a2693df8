package notify

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/config"
)

// Module provides the event publisher. A broker is used only when AMQP_URL is set.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
}

var dialAMQP = func(url, exchange string) (Publisher, error) {
	return DialAMQP(url, exchange)
}

func newPublisher(p publisherParams) (Publisher, error) {
	logger := p.Logger.Named("notify")

	var pub Publisher
	if p.Config.AMQPURL == "" {
		logger.Info("amqp url is not set, order events go to the log")
		pub = NewLogPublisher(logger)
	} else {
		var err error
		pub, err = dialAMQP(p.Config.AMQPURL, p.Config.EventsExchange)
		if err != nil {
			return nil, err
		}
		logger.Info("publishing order events to amqp", zap.String("exchange", p.Config.EventsExchange))
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
