package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/campusfood/internal/adapter/notify"
	"github.com/polkiloo/campusfood/internal/adapter/sentiment"
	"github.com/polkiloo/campusfood/internal/app"
	"github.com/polkiloo/campusfood/internal/config"
	"github.com/polkiloo/campusfood/internal/logger"
	"github.com/polkiloo/campusfood/internal/pkg/auth"
	"github.com/polkiloo/campusfood/internal/server/http/router"
	"github.com/polkiloo/campusfood/internal/storage/postgres"
	"github.com/polkiloo/campusfood/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		sentiment.Module,
		notify.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
