package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/campusfood/internal/app"
	"github.com/polkiloo/campusfood/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.CampusFacade) handlers.CampusFacade { return f }),
	fx.Provide(Setup),
)
