package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/auth"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	responder
	Service   *logistics.Service
	JWTSecret string
}

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Token   string     `json:"token"`
	User    model.User `json:"user"`
	Warning string     `json:"warning,omitempty"`
}

type meResponse struct {
	User        model.User            `json:"user"`
	Permissions model.RolePermissions `json:"permissions"`
	Nav         logistics.NavState    `json:"nav"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		h.jsonError(w, http.StatusBadRequest, "email required")
		return
	}

	ws := h.Service.NewWorkspace()
	user, err := h.Service.Login(r.Context(), ws, req.Email)
	if err != nil && !errors.Is(err, store.ErrPersist) {
		h.Service.Forget(ws.ID)
		h.log.Warn("login failed", zap.String("email", req.Email), zap.String("remote", r.RemoteAddr))
		h.writeError(w, err)
		return
	}

	token, tokenErr := auth.GenerateToken(h.JWTSecret, ws.ID)
	if tokenErr != nil {
		h.Service.Forget(ws.ID)
		h.jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	resp := loginResponse{Token: token, User: user}
	if err != nil {
		resp.Warning = persistWarning
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	err := h.Service.Logout(r.Context(), ws)
	h.Service.Forget(ws.ID)
	h.writeMutation(w, http.StatusOK, "message", "logged out", err)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	user, ok := h.Service.User(ws)
	if !ok {
		h.writeError(w, logistics.ErrUnauthenticated)
		return
	}
	h.jsonResponse(w, http.StatusOK, meResponse{
		User:        user,
		Permissions: h.Service.Permissions(ws),
		Nav:         h.Service.Nav(ws),
	})
}

// Notifications handles GET /api/notifications, draining the queue.
func (h *AuthHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notices := h.Service.Notices(GetWorkspace(r.Context()))
	if notices == nil {
		h.jsonResponse(w, http.StatusOK, []any{})
		return
	}
	h.jsonResponse(w, http.StatusOK, notices)
}
