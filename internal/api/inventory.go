package api

import (
	"net/http"
	"strconv"

	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
)

// InventoryHandler handles the derived inventory views.
type InventoryHandler struct {
	responder
	Service *logistics.Service
}

// Stats handles GET /api/stats.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(GetWorkspace(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// Categories handles GET /api/categories.
func (h *InventoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Service.Categories(GetWorkspace(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, cats)
}

// Activity handles GET /api/activity?n=.
func (h *InventoryHandler) Activity(w http.ResponseWriter, r *http.Request) {
	n := 0
	if s := r.URL.Query().Get("n"); s != "" {
		var err error
		if n, err = strconv.Atoi(s); err != nil {
			h.jsonError(w, http.StatusBadRequest, "invalid n")
			return
		}
	}

	entries, err := h.Service.Activity(GetWorkspace(r.Context()), n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []model.ActivityEntry{}
	}
	h.jsonResponse(w, http.StatusOK, entries)
}
