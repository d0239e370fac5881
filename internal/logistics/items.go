package logistics

import (
	"context"
	"errors"
	"fmt"

	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// SaveItem adds item when its ID is zero or unknown and updates it otherwise.
// It reports whether the item was added.
func (s *Service) SaveItem(ctx context.Context, ws *Workspace, item model.Item) (model.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapEdit)
	if err != nil {
		return model.Item{}, false, err
	}

	saved, created, err := s.inventory.Upsert(ctx, item)
	if !applied(err) {
		s.fail(ws, "Could not save item", err)
		return model.Item{}, false, err
	}

	action, title := "Updated item", "Item updated"
	if created {
		action, title = "Added item", "Item added"
	}
	err = errors.Join(err, s.record(ctx, u, action, saved.Name))
	s.done(ws, title, saved.Name+" saved", err)
	return saved, created, err
}

// DeleteItem removes an item. It requires confirmation.
func (s *Service) DeleteItem(ctx context.Context, ws *Workspace, id int64, confirm store.Confirmation) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapDelete)
	if err != nil {
		return model.Item{}, err
	}

	removed, err := s.inventory.Remove(ctx, id, confirm)
	if !applied(err) {
		s.fail(ws, "Could not delete item", err)
		return model.Item{}, err
	}

	err = errors.Join(err, s.record(ctx, u, "Deleted item", removed.Name))
	s.done(ws, "Item deleted", removed.Name+" removed", err)
	return removed, err
}

// CheckoutItem assigns quantity units of an item to holder, optionally due
// back on dueDate (YYYY-MM-DD).
func (s *Service) CheckoutItem(ctx context.Context, ws *Workspace, id int64, quantity int, holder, dueDate string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapCheckout)
	if err != nil {
		return model.Item{}, err
	}

	item, err := s.inventory.Checkout(ctx, id, quantity, holder, dueDate)
	if !applied(err) {
		s.fail(ws, "Checkout failed", err)
		return model.Item{}, err
	}

	action := fmt.Sprintf("Checked out %d to %s", quantity, item.Holder())
	err = errors.Join(err, s.record(ctx, u, action, item.Name))
	s.done(ws, "Item checked out", fmt.Sprintf("%d × %s to %s", quantity, item.Name, item.Holder()), err)
	return item, err
}

// ReturnItem checks quantity units of an item back in.
func (s *Service) ReturnItem(ctx context.Context, ws *Workspace, id int64, quantity int) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapCheckout)
	if err != nil {
		return model.Item{}, err
	}

	item, err := s.inventory.Return(ctx, id, quantity)
	if !applied(err) {
		s.fail(ws, "Return failed", err)
		return model.Item{}, err
	}

	err = errors.Join(err, s.record(ctx, u, fmt.Sprintf("Returned %d", quantity), item.Name))
	s.done(ws, "Item returned", fmt.Sprintf("%d × %s returned", quantity, item.Name), err)
	return item, err
}

// SetItemCondition changes the condition of an item.
func (s *Service) SetItemCondition(ctx context.Context, ws *Workspace, id int64, condition string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapEdit)
	if err != nil {
		return model.Item{}, err
	}

	item, err := s.inventory.SetCondition(ctx, id, condition)
	if !applied(err) {
		s.fail(ws, "Could not update condition", err)
		return model.Item{}, err
	}

	err = errors.Join(err, s.record(ctx, u, "Condition set to "+condition, item.Name))
	s.done(ws, "Condition updated", item.Name+" is now "+condition, err)
	return item, err
}
