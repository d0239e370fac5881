package logistics

import (
	"fmt"

	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/navigation"
)

const pageDashboard = navigation.PageDashboard

// NavState is the navigation state of a workspace.
type NavState struct {
	navigation.Frame
	CanGoBack bool `json:"canGoBack"`
	Depth     int  `json:"depth"`
}

func navState(c *navigation.Controller) NavState {
	return NavState{Frame: c.Current(), CanGoBack: c.CanGoBack(), Depth: c.Depth()}
}

func (s *Service) checkPage(ws *Workspace, page, category string) error {
	if !navigation.ValidPage(page) {
		return fmt.Errorf("%w: %q", ErrInvalidPage, page)
	}
	if category != "" && !model.ValidCategory(category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPage, category)
	}
	if page == navigation.PageAdmin {
		_, err := s.authorize(ws, model.CapManageUsers)
		return err
	}
	_, err := s.authorize(ws)
	return err
}

// Nav returns the navigation state of ws.
func (s *Service) Nav(ws *Workspace) NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return navState(ws.Nav)
}

// Navigate moves ws to page. A non-empty category selects it; otherwise the
// current category is kept.
func (s *Service) Navigate(ws *Workspace, page, category string) (NavState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPage(ws, page, category); err != nil {
		return navState(ws.Nav), err
	}
	if category != "" {
		ws.Nav.NavigateToCategory(page, category)
	} else {
		ws.Nav.NavigateTo(page)
	}
	return navState(ws.Nav), nil
}

// Back returns ws to the previous frame, if any.
func (s *Service) Back(ws *Workspace) NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws.Nav.GoBack()
	return navState(ws.Nav)
}

// ResetNav jumps ws to page, clearing history and category.
func (s *Service) ResetNav(ws *Workspace, page string) (NavState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPage(ws, page, ""); err != nil {
		return navState(ws.Nav), err
	}
	ws.Nav.Reset(page)
	return navState(ws.Nav), nil
}

// ClearCategory drops the selected category of ws.
func (s *Service) ClearCategory(ws *Workspace) NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws.Nav.ClearCategory()
	return navState(ws.Nav)
}
