package web

import (
	"context"
	"net/http"

	"github.com/afjrotc/logistics/internal/auth"
	"github.com/afjrotc/logistics/internal/logistics"
)

// cookieName holds the session token.
const cookieName = "session"

type webContextKey struct{}

// CookieAuthMiddleware validates the session cookie, resolves its workspace
// and adds it to the context. Anything else goes to the login page.
func CookieAuthMiddleware(svc *logistics.Service, secret string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws, ok := workspaceFromCookie(r, svc, secret)
			if !ok {
				clearAuthCookie(w, secure)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webContextKey{}, ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func workspaceFromCookie(r *http.Request, svc *logistics.Service, secret string) (*logistics.Workspace, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		return nil, false
	}
	ws, err := svc.Workspace(r.Context(), claims.SessionID)
	if err != nil {
		return nil, false
	}
	if _, ok := svc.User(ws); !ok {
		return nil, false
	}
	return ws, true
}

func setAuthCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWorkspace retrieves the workspace from web context.
func GetWorkspace(ctx context.Context) *logistics.Workspace {
	ws, _ := ctx.Value(webContextKey{}).(*logistics.Workspace)
	return ws
}
