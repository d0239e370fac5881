package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/navigation"
)

// Home handles GET /, rendering whichever page the workspace is on.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())

	switch s.Service.Nav(ws).Page {
	case navigation.PageInventory:
		s.inventoryPage(w, r, ws)
	case navigation.PageAdmin:
		s.adminPage(w, r, ws)
	default:
		s.dashboardPage(w, r, ws)
	}
}

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request, ws *logistics.Workspace) {
	view, err := s.Service.Dashboard(ws)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		logistics.DashboardView
	}{
		PageData:      s.pageData(ws, "Dashboard Overview"),
		DashboardView: view,
	})
}

func (s *Server) inventoryPage(w http.ResponseWriter, r *http.Request, ws *logistics.Workspace) {
	q := r.URL.Query()
	condition := q.Get("condition")
	if condition != "" && condition != model.ConditionAll && !model.ValidCondition(condition) {
		condition = model.ConditionAll
	}

	view, err := s.Service.Inventory(ws, q.Get("q"), condition)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		logistics.InventoryView
	}{
		PageData:      s.pageData(ws, "Inventory Management"),
		InventoryView: view,
	})
}

func (s *Server) adminPage(w http.ResponseWriter, r *http.Request, ws *logistics.Workspace) {
	users, err := s.Service.AllowedUsers(ws)
	if errors.Is(err, logistics.ErrForbidden) {
		// The role may have changed since navigating here.
		if _, err := s.Service.ResetNav(ws, navigation.PageDashboard); err != nil {
			s.fail(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	activity, err := s.Service.Activity(ws, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.Templates.Render(w, "admin.html", &struct {
		PageData
		Users    []model.AllowedEmail
		Activity []model.ActivityEntry
	}{
		PageData: s.pageData(ws, "User Management"),
		Users:    users,
		Activity: activity,
	})
}

// fail handles errors that leave nothing to render.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, logistics.ErrUnauthenticated) {
		clearAuthCookie(w, s.CookieSecure)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.Logger.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// back redirects to the current page after a form post. Errors were already
// queued as notifications by the service.
func back(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if ret := r.FormValue("return"); ret != "" && ret[0] == '?' {
		target += ret
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
