package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/auth"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := workspaceFromCookie(r, s.Service, s.JWTSecret); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	pd := &PageData{Title: "Sign In"}
	if r.URL.Query().Has("logged_out") {
		pd.Success = "You have been logged out successfully"
	}
	s.Templates.Render(w, "login.html", pd)
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if email == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign In",
			Error: "Please enter your school email.",
		})
		return
	}

	ws := s.Service.NewWorkspace()
	if _, err := s.Service.Login(r.Context(), ws, email); err != nil && !errors.Is(err, store.ErrPersist) {
		s.Service.Forget(ws.ID)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign In",
			Error: logistics.LoginDeniedMessage,
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, ws.ID)
	if err != nil {
		s.Service.Forget(ws.ID)
		s.Logger.Error("failed to generate token", zap.Error(err))
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign In",
			Error: "Login failed. Please try again.",
		})
		return
	}

	setAuthCookie(w, token, s.CookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if ws, ok := workspaceFromCookie(r, s.Service, s.JWTSecret); ok {
		if err := s.Service.Logout(r.Context(), ws); err != nil {
			s.Logger.Warn("logout not persisted", zap.Error(err))
		}
		s.Service.Forget(ws.ID)
	}
	clearAuthCookie(w, s.CookieSecure)
	http.Redirect(w, r, "/login?logged_out=1", http.StatusSeeOther)
}
