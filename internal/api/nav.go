package api

import (
	"net/http"

	"github.com/afjrotc/logistics/internal/logistics"
)

// NavHandler handles the navigation endpoints.
type NavHandler struct {
	responder
	Service *logistics.Service
}

type navRequest struct {
	Page     string `json:"page"`
	Category string `json:"category"`
}

// Get handles GET /api/nav.
func (h *NavHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.Service.Nav(GetWorkspace(r.Context())))
}

// Navigate handles POST /api/nav.
func (h *NavHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nav, err := h.Service.Navigate(GetWorkspace(r.Context()), req.Page, req.Category)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, nav)
}

// Back handles POST /api/nav/back.
func (h *NavHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.Service.Back(GetWorkspace(r.Context())))
}

// Reset handles POST /api/nav/reset.
func (h *NavHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nav, err := h.Service.ResetNav(GetWorkspace(r.Context()), req.Page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, nav)
}

// ClearCategory handles POST /api/nav/clear-category.
func (h *NavHandler) ClearCategory(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.Service.ClearCategory(GetWorkspace(r.Context())))
}
