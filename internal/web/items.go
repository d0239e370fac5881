package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/notify"
	"github.com/afjrotc/logistics/internal/store"
)

// formInt parses a whole-number field. An empty optional field reads as zero.
// A bad value is reported as a notification.
func formInt(r *http.Request, name string, optional bool) (int, bool) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" && optional {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		GetWorkspace(r.Context()).Notices.Notify(notify.Error("Invalid quantity",
			fmt.Sprintf("%s must be a whole number.", name)))
		return 0, false
	}
	return n, true
}

func formOptional(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// itemFromForm reads the item editor fields. It reports false, after
// notifying, when a count is not a number.
func itemFromForm(r *http.Request, id int64) (model.Item, bool) {
	quantity, ok := formInt(r, "quantity", false)
	if !ok {
		return model.Item{}, false
	}
	inUse, ok := formInt(r, "inUse", true)
	if !ok {
		return model.Item{}, false
	}
	return model.Item{
		ID:         id,
		Category:   r.FormValue("category"),
		Name:       strings.TrimSpace(r.FormValue("name")),
		Quantity:   quantity,
		InUse:      inUse,
		AssignedTo: formOptional(r, "assignedTo"),
		Condition:  r.FormValue("condition"),
		Location:   strings.TrimSpace(r.FormValue("location")),
		Notes:      strings.TrimSpace(r.FormValue("notes")),
		DueDate:    formOptional(r, "dueDate"),
	}, true
}

// pathID parses {id}. A bad id is reported as a notification.
func (s *Server) pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		GetWorkspace(r.Context()).Notices.Notify(notify.Error("Invalid item", "No item with that id."))
		return 0, false
	}
	return id, true
}

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if item, ok := itemFromForm(r, 0); ok {
		// Failures reach the user through the workspace notices.
		_, _, _ = s.Service.SaveItem(r.Context(), GetWorkspace(r.Context()), item)
	}
	back(w, r)
}

// ItemUpdateSubmit handles POST /items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(r)
	if !ok {
		back(w, r)
		return
	}
	if item, ok := itemFromForm(r, id); ok {
		_, _, _ = s.Service.SaveItem(r.Context(), GetWorkspace(r.Context()), item)
	}
	back(w, r)
}

// ItemCheckoutSubmit handles POST /items/{id}/checkout.
func (s *Server) ItemCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(r)
	if !ok {
		back(w, r)
		return
	}
	if quantity, ok := formInt(r, "quantity", false); ok {
		_, _ = s.Service.CheckoutItem(r.Context(), GetWorkspace(r.Context()), id,
			quantity, r.FormValue("assignedTo"), strings.TrimSpace(r.FormValue("dueDate")))
	}
	back(w, r)
}

// ItemReturnSubmit handles POST /items/{id}/return.
func (s *Server) ItemReturnSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(r)
	if !ok {
		back(w, r)
		return
	}
	if quantity, ok := formInt(r, "quantity", false); ok {
		_, _ = s.Service.ReturnItem(r.Context(), GetWorkspace(r.Context()), id, quantity)
	}
	back(w, r)
}

// ItemConditionSubmit handles POST /items/{id}/condition.
func (s *Server) ItemConditionSubmit(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.pathID(r); ok {
		_, _ = s.Service.SetItemCondition(r.Context(), GetWorkspace(r.Context()), id, r.FormValue("condition"))
	}
	back(w, r)
}

// ItemDeleteSubmit handles POST /items/{id}/delete. The form must carry a
// ticked "confirm" box.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.pathID(r); ok {
		_, _ = s.Service.DeleteItem(r.Context(), GetWorkspace(r.Context()), id, confirmed(r))
	}
	back(w, r)
}

func confirmed(r *http.Request) store.Confirmation {
	return store.Confirmation(r.FormValue("confirm") == "yes")
}
