package logistics

import (
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// RecentActivity is the number of activity entries shown on the dashboard.
const RecentActivity = 10

// DashboardView is what the dashboard page shows.
type DashboardView struct {
	Stats      store.Stats             `json:"stats"`
	Categories []store.CategorySummary `json:"categories"`
	Recent     []model.ActivityEntry   `json:"recent"`
}

// InventoryView is what the inventory page shows. Category is nil when no
// category is selected.
type InventoryView struct {
	Items     []model.Item    `json:"items"`
	Category  *model.Category `json:"category,omitempty"`
	Search    string          `json:"search"`
	Condition string          `json:"condition"`
}

// Dashboard builds the dashboard of ws.
func (s *Service) Dashboard(ws *Workspace) (DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return DashboardView{}, err
	}
	return DashboardView{
		Stats:      s.inventory.Statistics(),
		Categories: s.inventory.CategorySummaries(),
		Recent:     s.activity.Recent(RecentActivity),
	}, nil
}

// Inventory lists the items matching search and condition within the
// category selected in ws.
func (s *Service) Inventory(ws *Workspace, search, condition string) (InventoryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return InventoryView{}, err
	}
	if condition == "" {
		condition = model.ConditionAll
	}

	category := ws.Nav.Current().Category
	v := InventoryView{
		Items:     s.inventory.Filter(store.Filter{Search: search, Category: category, Condition: condition}),
		Search:    search,
		Condition: condition,
	}
	if c, ok := model.LookupCategory(category); ok {
		v.Category = &c
	}
	return v, nil
}

// Items lists the items matching f, ignoring the workspace's navigation.
func (s *Service) Items(ws *Workspace, f store.Filter) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return nil, err
	}
	return s.inventory.Filter(f), nil
}

// Item returns one item.
func (s *Service) Item(ws *Workspace, id int64) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return model.Item{}, err
	}
	item, ok := s.inventory.Get(id)
	if !ok {
		return model.Item{}, store.ErrNotFound
	}
	return item, nil
}

// Stats returns the dashboard totals.
func (s *Service) Stats(ws *Workspace) (store.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return store.Stats{}, err
	}
	return s.inventory.Statistics(), nil
}

// Categories returns every category with its totals.
func (s *Service) Categories(ws *Workspace) ([]store.CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return nil, err
	}
	return s.inventory.CategorySummaries(), nil
}

// Activity returns up to n newest activity entries; n <= 0 returns all.
func (s *Service) Activity(ws *Workspace, n int) ([]model.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws); err != nil {
		return nil, err
	}
	return s.activity.Recent(n), nil
}
