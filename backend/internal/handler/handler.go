package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/backend/internal/service"
	"github.com/itchan-dev/shopkeeper/shared/errors"
)

// Renderer turns an article description into HTML.
type Renderer interface {
	Render(text string) string
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	article  service.ArticleService
	customer service.CustomerService
	markdown Renderer
	health   HealthChecker
}

func New(auth service.AuthService, article service.ArticleService, customer service.CustomerService, markdown Renderer, health HealthChecker) *Handler {
	return &Handler{
		auth:     auth,
		article:  article,
		customer: customer,
		markdown: markdown,
		health:   health,
	}
}

// pathId parses a uuid path parameter. A malformed id cannot name an existing
// record, so it is reported as not found.
func pathId(r *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errors.NotFound(entity + " not found")
	}
	return id, nil
}

func parseArticleRef(ref string) (uuid.UUID, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, errors.Validation("Invalid fields: article")
	}
	return id, nil
}
