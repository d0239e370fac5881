package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/auth"
	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/navigation"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	server *httptest.Server
	kv     *kv.Memory
}

func setupTestServer(t *testing.T) testEnv {
	t.Helper()
	m := kv.NewMemory()
	svc := logistics.New(m, logistics.Options{})
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("init service: %v", err)
	}

	root := chi.NewRouter()
	root.Use(RequestID, LoggingMiddleware(zap.NewNop(), nil))
	root.Mount("/api", NewRouter(svc, testJWTSecret, zap.NewNop()))
	server := httptest.NewServer(root)
	t.Cleanup(server.Close)

	return testEnv{server: server, kv: m}
}

// login returns a token for email.
func (e testEnv) login(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email})
	resp, err := http.Post(e.server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp loginResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	return loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends an authenticated request, checks the status and decodes the
// response into out when out is non-nil.
func do(t *testing.T, method, url, token string, body any, want int, out any) {
	t.Helper()
	req, _ := authRequest(method, url, token, body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d", method, url, want, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s: %v", method, url, err)
		}
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "stranger@school.edu"})
	resp, _ := http.Post(env.server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", resp.StatusCode)
	}
	var errResp map[string]string
	json.NewDecoder(resp.Body).Decode(&errResp)
	resp.Body.Close()
	if errResp["error"] != logistics.LoginDeniedMessage {
		t.Errorf("unexpected error message %q", errResp["error"])
	}

	token := env.login(t, "LOGISTICS@school.edu")
	var me meResponse
	do(t, "GET", env.server.URL+"/api/auth/me", token, nil, http.StatusOK, &me)
	if me.User.Name != "C/MSgt Rodriguez" || me.User.Role != model.RoleLogistics {
		t.Errorf("unexpected user %+v", me.User)
	}
	if !me.Permissions.CanEdit || me.Permissions.CanDelete {
		t.Errorf("unexpected permissions %+v", me.Permissions)
	}
	if me.Nav.Page != navigation.PageDashboard {
		t.Errorf("expected dashboard, got %q", me.Nav.Page)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "cadet@school.edu")

	do(t, "POST", env.server.URL+"/api/auth/logout", token, nil, http.StatusOK, nil)
	do(t, "GET", env.server.URL+"/api/items", token, nil, http.StatusUnauthorized, nil)
}

func TestLogoutEndsSessionWhenStoreFails(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "instructor@school.edu")

	env.kv.SetFailing(true)
	var resp map[string]string
	do(t, "POST", env.server.URL+"/api/auth/logout", token, nil, http.StatusOK, &resp)
	if resp["warning"] == "" {
		t.Errorf("expected persist warning, got %v", resp)
	}
	env.kv.SetFailing(false)

	do(t, "GET", env.server.URL+"/api/items", token, nil, http.StatusUnauthorized, nil)
}

func TestUnauthenticatedAccess(t *testing.T) {
	env := setupTestServer(t)

	resp, _ := http.Get(env.server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A well-signed token for a session that never logged in.
	token, _ := auth.GenerateToken(testJWTSecret, "never-logged-in")
	do(t, "GET", env.server.URL+"/api/items", token, nil, http.StatusUnauthorized, nil)

	forged, _ := auth.GenerateToken("other-secret", "whatever")
	do(t, "GET", env.server.URL+"/api/items", forged, nil, http.StatusUnauthorized, nil)
}

func TestItemsAPIFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "instructor@school.edu")
	base := env.server.URL + "/api/items"

	var items []model.Item
	do(t, "GET", base+"?q=rifle&condition=all", token, nil, http.StatusOK, &items)
	if len(items) != 2 || items[0].Name != "Drill Rifle (Daisy)" || items[1].Name != "Air Rifle" {
		t.Fatalf("unexpected rifle search result: %+v", items)
	}

	// Create item.
	var created struct {
		Item    model.Item `json:"item"`
		Warning string     `json:"warning"`
	}
	do(t, "POST", base, token, map[string]any{
		"category":  model.CategoryField,
		"name":      "Canteen",
		"quantity":  30,
		"condition": model.ConditionNew,
		"location":  "Garage",
	}, http.StatusCreated, &created)
	if created.Item.ID != 9 || created.Warning != "" {
		t.Fatalf("unexpected create result: %+v", created)
	}

	url := base + "/9"
	do(t, "POST", url+"/checkout", token, map[string]any{"quantity": 4, "assignedTo": "Flight 2", "dueDate": "2025-12-01"}, http.StatusOK, nil)
	do(t, "POST", url+"/checkout", token, map[string]any{"quantity": 40, "assignedTo": "Flight 2"}, http.StatusConflict, nil)
	do(t, "POST", url+"/return", token, map[string]any{"quantity": 4}, http.StatusOK, nil)
	do(t, "PUT", url+"/condition", token, map[string]any{"condition": "unserviceable"}, http.StatusOK, nil)
	do(t, "PUT", url+"/condition", token, map[string]any{"condition": "broken"}, http.StatusBadRequest, nil)

	var item model.Item
	do(t, "GET", url, token, nil, http.StatusOK, &item)
	if item.InUse != 0 || item.AssignedTo != nil || item.Condition != model.ConditionUnserviceable {
		t.Errorf("unexpected item state: %+v", item)
	}

	do(t, "PUT", base+"/99", token, map[string]any{"name": "Ghost"}, http.StatusNotFound, nil)
	do(t, "DELETE", url, token, nil, http.StatusPreconditionRequired, nil)
	do(t, "DELETE", url+"?confirm=true", token, nil, http.StatusOK, nil)
	do(t, "GET", url, token, nil, http.StatusNotFound, nil)
	do(t, "GET", base+"/abc", token, nil, http.StatusBadRequest, nil)

	var entries []model.ActivityEntry
	do(t, "GET", env.server.URL+"/api/activity?n=3", token, nil, http.StatusOK, &entries)
	if len(entries) != 3 || entries[0].Action != "Deleted item" {
		t.Errorf("unexpected activity: %+v", entries)
	}
}

func TestRoleBasedAccess(t *testing.T) {
	env := setupTestServer(t)
	cadet := env.login(t, "cadet@school.edu")
	officer := env.login(t, "logistics@school.edu")

	do(t, "POST", env.server.URL+"/api/items", cadet, map[string]any{"name": "Test"}, http.StatusForbidden, nil)
	do(t, "GET", env.server.URL+"/api/users", cadet, nil, http.StatusForbidden, nil)
	do(t, "DELETE", env.server.URL+"/api/items/1?confirm=true", officer, nil, http.StatusForbidden, nil)
	do(t, "POST", env.server.URL+"/api/items/2/checkout", cadet, map[string]any{"quantity": 1, "assignedTo": "C/Amn Smith"}, http.StatusOK, nil)
	do(t, "POST", env.server.URL+"/api/nav", officer, map[string]string{"page": "admin"}, http.StatusForbidden, nil)
}

func TestUsersAPIFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "instructor@school.edu")
	base := env.server.URL + "/api/users"

	do(t, "POST", base, token, map[string]string{"email": "new@school.edu", "name": "C/Amn Lee", "role": "cadet"}, http.StatusCreated, nil)
	do(t, "POST", base, token, map[string]string{"email": "NEW@school.edu", "name": "Dup", "role": "cadet"}, http.StatusConflict, nil)
	do(t, "POST", base, token, map[string]string{"email": "x@school.edu", "name": "X", "role": "general"}, http.StatusBadRequest, nil)
	do(t, "POST", base, token, map[string]string{"email": "", "name": "X", "role": "cadet"}, http.StatusBadRequest, nil)

	var users []model.AllowedEmail
	do(t, "GET", base, token, nil, http.StatusOK, &users)
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}

	env.login(t, "new@school.edu")

	do(t, "DELETE", base+"/ghost@school.edu?confirm=true", token, nil, http.StatusNotFound, nil)
	do(t, "DELETE", base+"/new@school.edu", token, nil, http.StatusPreconditionRequired, nil)
	do(t, "DELETE", base+"/new@school.edu?confirm=true", token, nil, http.StatusOK, nil)

	do(t, "GET", base, token, nil, http.StatusOK, &users)
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}
}

func TestNavigationAPI(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "instructor@school.edu")
	base := env.server.URL + "/api/nav"

	var nav logistics.NavState
	do(t, "POST", base, token, map[string]string{"page": "inventory", "category": "drill"}, http.StatusOK, &nav)
	if nav.Page != "inventory" || nav.Category != "drill" || !nav.CanGoBack {
		t.Fatalf("unexpected nav after navigate: %+v", nav)
	}

	do(t, "POST", base+"/back", token, nil, http.StatusOK, &nav)
	if nav.Page != "dashboard" || nav.Category != "" || nav.CanGoBack {
		t.Fatalf("unexpected nav after back: %+v", nav)
	}

	// Back on empty history is a no-op.
	do(t, "POST", base+"/back", token, nil, http.StatusOK, &nav)
	if nav.Page != "dashboard" {
		t.Errorf("expected dashboard, got %q", nav.Page)
	}

	do(t, "POST", base, token, map[string]string{"page": "settings"}, http.StatusBadRequest, nil)
	do(t, "POST", base+"/reset", token, map[string]string{"page": "admin"}, http.StatusOK, &nav)
	if nav.Page != "admin" || nav.Depth != 0 {
		t.Errorf("unexpected nav after reset: %+v", nav)
	}
}

func TestPersistFailureIsWarning(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "logistics@school.edu")
	env.kv.SetFailing(true)

	var resp struct {
		Item    model.Item `json:"item"`
		Warning string     `json:"warning"`
	}
	do(t, "POST", env.server.URL+"/api/items/2/checkout", token, map[string]any{"quantity": 2, "assignedTo": "Flight 1"}, http.StatusOK, &resp)
	if resp.Warning == "" || resp.Item.InUse != 2 {
		t.Errorf("expected applied change with warning, got %+v", resp)
	}

	var stats map[string]int
	do(t, "GET", env.server.URL+"/api/stats", token, nil, http.StatusOK, &stats)
	if stats["inUse"] != 36 {
		t.Errorf("expected 36 in use, got %d", stats["inUse"])
	}
}

func TestNotificationsDrain(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "instructor@school.edu")

	var notices []map[string]string
	do(t, "GET", env.server.URL+"/api/notifications", token, nil, http.StatusOK, &notices)
	if len(notices) != 1 || notices[0]["title"] != "Welcome!" {
		t.Fatalf("unexpected notifications: %+v", notices)
	}

	do(t, "GET", env.server.URL+"/api/notifications", token, nil, http.StatusOK, &notices)
	if len(notices) != 0 {
		t.Errorf("expected drained queue, got %+v", notices)
	}
}
