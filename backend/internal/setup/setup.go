package setup

import (
	"context"

	"github.com/itchan-dev/shopkeeper/backend/internal/handler"
	"github.com/itchan-dev/shopkeeper/backend/internal/markdown"
	"github.com/itchan-dev/shopkeeper/backend/internal/service"
	"github.com/itchan-dev/shopkeeper/backend/internal/storage/pg"
	"github.com/itchan-dev/shopkeeper/shared/config"
	"github.com/itchan-dev/shopkeeper/shared/jwt"
	mw "github.com/itchan-dev/shopkeeper/shared/middleware"
	"github.com/itchan-dev/shopkeeper/shared/middleware/metrics"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Metrics        *metrics.Metrics
}

// SetupDependencies connects to the database, applies the schema and wires
// services, handlers and middleware.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(ctx); err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwt := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwt)
	article := service.NewArticle(storage)
	customer := service.NewCustomer(storage)

	h := handler.New(auth, article, customer, markdown.New(), storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(auth),
		Metrics:        metrics.New(),
	}, nil
}
