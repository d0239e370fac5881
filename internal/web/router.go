// Package web serves the HTML pages.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/logistics"
	webembed "github.com/afjrotc/logistics/web"
)

// Options configures the web router.
type Options struct {
	JWTSecret    string
	CookieSecure bool
	Logger       *zap.Logger
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(svc *logistics.Service, opts Options) (http.Handler, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	templates, err := LoadTemplates(opts.Logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Service:      svc,
		Templates:    templates,
		JWTSecret:    opts.JWTSecret,
		CookieSecure: opts.CookieSecure,
		Logger:       opts.Logger,
	}

	r := chi.NewRouter()

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	r.Get("/login", s.LoginPage)
	r.Post("/login", s.LoginSubmit)
	r.Post("/logout", s.Logout)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(CookieAuthMiddleware(svc, opts.JWTSecret, opts.CookieSecure))

		r.Get("/", s.Home)

		r.Post("/nav", s.Navigate)
		r.Post("/nav/back", s.NavBack)
		r.Post("/nav/reset", s.NavReset)
		r.Post("/nav/clear-category", s.NavClearCategory)

		r.Post("/items", s.ItemCreateSubmit)
		r.Post("/items/{id}", s.ItemUpdateSubmit)
		r.Post("/items/{id}/checkout", s.ItemCheckoutSubmit)
		r.Post("/items/{id}/return", s.ItemReturnSubmit)
		r.Post("/items/{id}/condition", s.ItemConditionSubmit)
		r.Post("/items/{id}/delete", s.ItemDeleteSubmit)

		r.Post("/users", s.UserCreateSubmit)
		r.Post("/users/remove", s.UserRemoveSubmit)
	})

	return r, nil
}
