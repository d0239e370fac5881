// Package logistics is the application layer: it owns the shared
// collections, hands out per-client workspaces and runs every user action
// against them one at a time.
package logistics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/notify"
	"github.com/afjrotc/logistics/internal/seed"
	"github.com/afjrotc/logistics/internal/store"
)

// Options configures a Service.
type Options struct {
	Logger *zap.Logger
	// Now is the clock for activity timestamps and item dates.
	Now func() time.Time
	// Notifier receives every notification in addition to the workspace queue.
	Notifier notify.Notifier
}

// Service runs user actions. Every exported method holds one lock for its
// whole duration, persistence included, so actions never interleave.
type Service struct {
	mu  sync.Mutex
	kv  kv.Store
	log *zap.Logger

	sink      notify.Notifier
	allow     *store.AllowList
	inventory *store.Inventory
	activity  *store.ActivityLog

	workspaces map[string]*Workspace
	// signedOut holds workspaces whose logout could not delete the persisted
	// session. They are never restored from it.
	signedOut map[string]struct{}
}

// New creates a service backed by s. Call Init before use.
func New(s kv.Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}
	return &Service{
		kv:         s,
		log:        opts.Logger,
		sink:       opts.Notifier,
		allow:      store.NewAllowList(s),
		inventory:  store.NewInventory(s, opts.Now),
		activity:   store.NewActivityLog(s, opts.Now),
		workspaces: make(map[string]*Workspace),
		signedOut:  make(map[string]struct{}),
	}
}

// Init loads the collections, falling back to seed data for anything that
// was never persisted. Load failures are logged and returned, but the
// service stays usable on the seed data.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := errors.Join(
		s.allow.Load(ctx, seed.AllowedEmails()),
		s.inventory.Load(ctx, seed.Items()),
		s.activity.Load(ctx),
	)
	if err != nil {
		s.log.Warn("initializing with default data", zap.Error(err))
	}
	return err
}

// Close drops every in-memory workspace.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.workspaces)
}

// Statistics returns the dashboard totals without a workspace, for metrics.
func (s *Service) Statistics() store.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Statistics()
}

// User returns the signed-in user of ws.
func (s *Service) User(ws *Workspace) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ws.Session.Current()
}

// Permissions returns the capabilities of the signed-in user of ws. An
// unauthenticated workspace has none.
func (s *Service) Permissions(ws *Workspace) model.RolePermissions {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := ws.Session.Current()
	if !ok {
		return model.RolePermissions{}
	}
	return model.PermissionsFor(u.Role)
}

// Login signs ws in as the allow-list record matching email.
func (s *Service) Login(ctx context.Context, ws *Workspace, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := ws.Session.Login(ctx, email)
	if errors.Is(err, store.ErrNotAuthorized) {
		s.log.Info("login denied", zap.String("email", email))
		return model.User{}, err
	}
	delete(s.signedOut, ws.ID)
	s.log.Info("user logged in", zap.String("email", u.Email), zap.String("role", u.Role))
	s.done(ws, "Welcome!", "Logged in as "+u.Name, err)
	return u, err
}

// Logout signs ws out and returns it to the dashboard.
func (s *Service) Logout(ctx context.Context, ws *Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := ws.Session.Current(); ok {
		s.log.Info("user logged out", zap.String("email", u.Email))
	}
	err := ws.Session.Logout(ctx)
	if err != nil {
		s.signedOut[ws.ID] = struct{}{}
	}
	ws.Nav.Reset(pageDashboard)
	s.done(ws, "Logged out", "You have been logged out successfully", err)
	return err
}

// authorize checks that ws is signed in with a role granting every cap.
func (s *Service) authorize(ws *Workspace, caps ...model.Capability) (model.User, error) {
	u, ok := ws.Session.Current()
	if !ok {
		return model.User{}, ErrUnauthenticated
	}
	perms := model.PermissionsFor(u.Role)
	for _, c := range caps {
		if !perms.Allows(c) {
			ws.notifier.Notify(notify.Error("Permission denied", "Your role can't "+c.String()+"."))
			return u, fmt.Errorf("%w: %s needs %s", ErrForbidden, u.Role, c)
		}
	}
	return u, nil
}

// record appends to the activity log on behalf of u.
func (s *Service) record(ctx context.Context, u model.User, action, item string) error {
	actor := u.Name
	if actor == "" {
		actor = "Unknown"
	}
	_, err := s.activity.Record(ctx, actor, action, item)
	return err
}

// done reports the outcome of a mutation that was applied in memory. err may
// only carry persistence failures.
func (s *Service) done(ws *Workspace, title, message string, err error) {
	if err != nil {
		s.log.Error("saving changes", zap.String("action", title), zap.Error(err))
		ws.notifier.Notify(notify.Error("Changes not saved", message+", but saving failed. The change is kept until restart."))
		return
	}
	ws.notifier.Notify(notify.Success(title, message))
}

// fail reports a mutation that was rejected before anything changed.
func (s *Service) fail(ws *Workspace, title string, err error) {
	ws.notifier.Notify(notify.Error(title, err.Error()))
}

// applied reports whether err still left the in-memory change in place.
func applied(err error) bool {
	return err == nil || errors.Is(err, store.ErrPersist)
}
