package model

import (
	"errors"
	"fmt"
)

// Item represents a stock line: a quantity of one kind of equipment, part of
// which may be checked out.
type Item struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	InUse       int     `json:"inUse"`
	AssignedTo  *string `json:"assignedTo"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location"`
	Notes       string  `json:"notes"`
	LastUpdated string  `json:"lastUpdated"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// Item conditions.
const (
	ConditionNew           = "new"
	ConditionGood          = "good"
	ConditionNeedsRepair   = "needs-repair"
	ConditionUnserviceable = "unserviceable"

	// ConditionAll is the filter sentinel that matches every condition.
	ConditionAll = "all"
)

// LowStockThreshold is the available quantity below which an item counts as low stock.
const LowStockThreshold = 5

// DateLayout is the layout of LastUpdated and DueDate.
const DateLayout = "2006-01-02"

// ErrInvalidItem is returned by Validate.
var ErrInvalidItem = errors.New("invalid item")

// ValidCondition reports whether c is one of the four item conditions.
func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionNeedsRepair, ConditionUnserviceable:
		return true
	}
	return false
}

// Available returns the quantity that is not checked out.
func (i Item) Available() int {
	return i.Quantity - i.InUse
}

// LowStock reports whether fewer than LowStockThreshold units are available.
func (i Item) LowStock() bool {
	return i.Available() < LowStockThreshold
}

// Holder returns the assigned holder name, or "" when nobody holds the item.
func (i Item) Holder() string {
	if i.AssignedTo == nil {
		return ""
	}
	return *i.AssignedTo
}

// Validate checks the item's fields, including 0 <= InUse <= Quantity.
func (i Item) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: name required", ErrInvalidItem)
	case !ValidCategory(i.Category):
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, i.Category)
	case !ValidCondition(i.Condition):
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidItem, i.Condition)
	case i.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	case i.InUse < 0:
		return fmt.Errorf("%w: in use must not be negative", ErrInvalidItem)
	case i.InUse > i.Quantity:
		return fmt.Errorf("%w: in use (%d) exceeds quantity (%d)", ErrInvalidItem, i.InUse, i.Quantity)
	}
	return nil
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	if i.AssignedTo != nil {
		v := *i.AssignedTo
		c.AssignedTo = &v
	}
	if i.DueDate != nil {
		v := *i.DueDate
		c.DueDate = &v
	}
	return c
}
