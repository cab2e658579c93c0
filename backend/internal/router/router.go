package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/shopkeeper/backend/internal/setup"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	mw "github.com/itchan-dev/shopkeeper/shared/middleware"
	rl "github.com/itchan-dev/shopkeeper/shared/middleware/ratelimiter"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

// loginBurst is how many login attempts one IP may make back to back.
const loginBurst = 5

// New creates the chi router with all routes.
//
// Access rules: article reads are public, article writes need an admin.
// Any signed-in user may read, create and update customers and orders, but
// every delete needs an admin.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(deps.Metrics.Middleware)
	r.Use(chimw.StripSlashes)
	r.Use(mw.SecurityHeaders(false))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorAndStatusCode(w, internal_errors.NotFound("Route not found"))
	})
	r.MethodNotAllowed(methodNotSupported)

	h := deps.Handler
	authMw := deps.AuthMiddleware
	user := r.With(authMw.NeedAuth())
	admin := r.With(authMw.NeedAuth(), authMw.AdminOnly())

	// Operational routes
	r.Get("/health", h.Health)
	r.Handle("/metrics", deps.Metrics.Handler())

	// Users
	loginLimiter := rl.New(deps.Config.Public.LoginRateLimit, loginBurst, 1*time.Hour)
	r.Post("/users/register", h.Register)
	r.With(mw.RateLimit(loginLimiter, mw.GetIP)).Post("/users/login", h.Login)
	admin.Get("/users", h.GetUsers)

	// Articles
	r.Get("/articles", h.GetArticles)
	admin.Post("/articles", h.CreateArticle)
	admin.Delete("/articles", h.DeleteArticles)
	r.Get("/articles/{articleId}", h.GetArticle)
	admin.Put("/articles/{articleId}", h.UpdateArticle)
	admin.Delete("/articles/{articleId}", h.DeleteArticle)

	// Customers
	user.Get("/customers", h.GetCustomers)
	user.Post("/customers", h.CreateCustomer)
	admin.Delete("/customers", h.DeleteCustomers)
	r.Get("/customers/{customerId}", h.GetCustomer)
	user.Put("/customers/{customerId}", h.UpdateCustomer)
	admin.Delete("/customers/{customerId}", h.DeleteCustomer)

	// Orders embedded in a customer
	user.Get("/customers/{customerId}/orders", h.GetOrders)
	user.Post("/customers/{customerId}/orders", h.CreateOrder)
	admin.Delete("/customers/{customerId}/orders", h.ClearOrders)
	user.Get("/customers/{customerId}/orders/{orderId}", h.GetOrder)
	user.Put("/customers/{customerId}/orders/{orderId}", h.UpdateOrder)
	admin.Delete("/customers/{customerId}/orders/{orderId}", h.DeleteOrder)

	return r
}

func methodNotSupported(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	fmt.Fprintf(w, "%s method not supported by %s", r.Method, r.URL.Path)
}
