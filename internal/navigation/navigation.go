// Package navigation tracks the page a client is looking at and the history
// that the back button walks.
package navigation

import "fmt"

// Page identifiers.
const (
	PageDashboard = "dashboard"
	PageInventory = "inventory"
	PageAdmin     = "admin"
)

// ValidPage reports whether p is a known page.
func ValidPage(p string) bool {
	switch p {
	case PageDashboard, PageInventory, PageAdmin:
		return true
	}
	return false
}

// Frame is a (page, category) pair. An empty Category means no category is
// selected.
type Frame struct {
	Page     string `json:"page"`
	Category string `json:"category,omitempty"`
}

func (f Frame) String() string {
	if f.Category == "" {
		return f.Page
	}
	return fmt.Sprintf("%s/%s", f.Page, f.Category)
}

// Controller is the navigation state of one client. The zero value is not
// ready for use; call New.
type Controller struct {
	current Frame
	history stack
}

// New returns a controller on the dashboard with no category and no history.
func New() *Controller {
	return &Controller{current: Frame{Page: PageDashboard}}
}

// NavigateTo records the current frame and switches to page, keeping the
// selected category.
func (c *Controller) NavigateTo(page string) {
	c.history.push(c.current)
	c.current.Page = page
}

// NavigateToCategory records the current frame and switches to page with
// category selected.
func (c *Controller) NavigateToCategory(page, category string) {
	c.history.push(c.current)
	c.current = Frame{Page: page, Category: category}
}

// GoBack restores the most recently recorded frame. It reports false and
// changes nothing when the history is empty.
func (c *Controller) GoBack() bool {
	f, ok := c.history.pop()
	if !ok {
		return false
	}
	c.current = f
	return true
}

// Reset jumps to page, dropping the history and the selected category.
func (c *Controller) Reset(page string) {
	c.history.clear()
	c.current = Frame{Page: page}
}

// ClearCategory drops the selected category without touching the history.
func (c *Controller) ClearCategory() {
	c.current.Category = ""
}

// Current returns the displayed frame.
func (c *Controller) Current() Frame {
	return c.current
}

// CanGoBack reports whether GoBack would change anything.
func (c *Controller) CanGoBack() bool {
	return c.history.len() > 0
}

// Depth returns the number of recorded frames.
func (c *Controller) Depth() int {
	return c.history.len()
}
