// Package api serves the JSON API under /api.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/logistics"
)

// NewRouter creates the API router with all endpoints registered. Paths are
// relative; mount it at /api.
func NewRouter(svc *logistics.Service, jwtSecret string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()

	res := responder{log: logger}
	authHandler := &AuthHandler{responder: res, Service: svc, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{responder: res, Service: svc}
	inventoryHandler := &InventoryHandler{responder: res, Service: svc}
	usersHandler := &UsersHandler{responder: res, Service: svc}
	navHandler := &NavHandler{responder: res, Service: svc}

	// Public: login.
	r.Post("/auth/login", authHandler.Login)

	// Authenticated routes. Role checks happen in the service.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(svc, jwtSecret, logger))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)
		r.Get("/notifications", authHandler.Notifications)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemsHandler.List)
			r.Post("/", itemsHandler.Create)
			r.Get("/{id}", itemsHandler.Get)
			r.Put("/{id}", itemsHandler.Update)
			r.Delete("/{id}", itemsHandler.Delete)
			r.Post("/{id}/checkout", itemsHandler.Checkout)
			r.Post("/{id}/return", itemsHandler.Return)
			r.Put("/{id}/condition", itemsHandler.SetCondition)
		})

		r.Get("/stats", inventoryHandler.Stats)
		r.Get("/categories", inventoryHandler.Categories)
		r.Get("/activity", inventoryHandler.Activity)

		r.Get("/users", usersHandler.List)
		r.Post("/users", usersHandler.Create)
		r.Delete("/users/{email}", usersHandler.Delete)

		r.Get("/nav", navHandler.Get)
		r.Post("/nav", navHandler.Navigate)
		r.Post("/nav/back", navHandler.Back)
		r.Post("/nav/reset", navHandler.Reset)
		r.Post("/nav/clear-category", navHandler.ClearCategory)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		res.jsonError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		res.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
