package web

import (
	"net/http"
)

// UserCreateSubmit handles POST /users.
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	// Failures reach the user through the workspace notices.
	_, _ = s.Service.AddAllowedUser(r.Context(), GetWorkspace(r.Context()),
		r.FormValue("email"), r.FormValue("name"), r.FormValue("role"))
	back(w, r)
}

// UserRemoveSubmit handles POST /users/remove.
func (s *Server) UserRemoveSubmit(w http.ResponseWriter, r *http.Request) {
	// Failures reach the user through the workspace notices.
	_, _ = s.Service.RemoveAllowedUser(r.Context(), GetWorkspace(r.Context()), r.FormValue("email"), confirmed(r))
	back(w, r)
}
