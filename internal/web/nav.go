package web

import (
	"net/http"
)

// Navigate handles POST /nav.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	// Invalid targets leave the page unchanged.
	_, _ = s.Service.Navigate(ws, r.FormValue("page"), r.FormValue("category"))
	back(w, r)
}

// NavBack handles POST /nav/back.
func (s *Server) NavBack(w http.ResponseWriter, r *http.Request) {
	s.Service.Back(GetWorkspace(r.Context()))
	back(w, r)
}

// NavReset handles POST /nav/reset, the navigation bar.
func (s *Server) NavReset(w http.ResponseWriter, r *http.Request) {
	// Invalid targets leave the page unchanged.
	_, _ = s.Service.ResetNav(GetWorkspace(r.Context()), r.FormValue("page"))
	back(w, r)
}

// NavClearCategory handles POST /nav/clear-category.
func (s *Server) NavClearCategory(w http.ResponseWriter, r *http.Request) {
	s.Service.ClearCategory(GetWorkspace(r.Context()))
	back(w, r)
}
