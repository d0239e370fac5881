package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/afjrotc/logistics/internal/logistics"
)

// UsersHandler handles the allow-list endpoints.
type UsersHandler struct {
	responder
	Service *logistics.Service
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.AllowedUsers(GetWorkspace(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.AddAllowedUser(r.Context(), GetWorkspace(r.Context()), req.Email, req.Name, req.Role)
	h.writeMutation(w, http.StatusCreated, "user", entry, err)
}

// Delete handles DELETE /api/users/{email}?confirm=true.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid email")
		return
	}

	entry, err := h.Service.RemoveAllowedUser(r.Context(), GetWorkspace(r.Context()), email, confirmation(r))
	h.writeMutation(w, http.StatusOK, "user", entry, err)
}
