package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	responder
	Service *logistics.Service
}

type itemRequest struct {
	Category   string  `json:"category"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	InUse      int     `json:"inUse"`
	AssignedTo *string `json:"assignedTo"`
	Condition  string  `json:"condition"`
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
	DueDate    *string `json:"dueDate"`
}

func (req itemRequest) item(id int64) model.Item {
	return model.Item{
		ID:         id,
		Category:   req.Category,
		Name:       req.Name,
		Quantity:   req.Quantity,
		InUse:      req.InUse,
		AssignedTo: req.AssignedTo,
		Condition:  req.Condition,
		Location:   req.Location,
		Notes:      req.Notes,
		DueDate:    req.DueDate,
	}
}

type checkoutRequest struct {
	Quantity   int    `json:"quantity"`
	AssignedTo string `json:"assignedTo"`
	DueDate    string `json:"dueDate"`
}

type returnRequest struct {
	Quantity int `json:"quantity"`
}

type conditionRequest struct {
	Condition string `json:"condition"`
}

func (h *ItemsHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Search:    q.Get("q"),
		Category:  q.Get("category"),
		Condition: q.Get("condition"),
	}
	if f.Category != "" && !model.ValidCategory(f.Category) {
		h.jsonError(w, http.StatusBadRequest, "unknown category")
		return
	}
	if f.Condition != "" && f.Condition != model.ConditionAll && !model.ValidCondition(f.Condition) {
		h.jsonError(w, http.StatusBadRequest, "unknown condition")
		return
	}

	items, err := h.Service.Items(GetWorkspace(r.Context()), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	h.jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.Service.Item(GetWorkspace(r.Context()), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, _, err := h.Service.SaveItem(r.Context(), GetWorkspace(r.Context()), req.item(0))
	h.writeMutation(w, http.StatusCreated, "item", item, err)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := GetWorkspace(r.Context())
	if _, err := h.Service.Item(ws, id); err != nil {
		h.writeError(w, err)
		return
	}
	item, _, err := h.Service.SaveItem(r.Context(), ws, req.item(id))
	h.writeMutation(w, http.StatusOK, "item", item, err)
}

// Delete handles DELETE /api/items/{id}?confirm=true.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.Service.DeleteItem(r.Context(), GetWorkspace(r.Context()), id, confirmation(r))
	h.writeMutation(w, http.StatusOK, "item", item, err)
}

// Checkout handles POST /api/items/{id}/checkout.
func (h *ItemsHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.CheckoutItem(r.Context(), GetWorkspace(r.Context()), id, req.Quantity, req.AssignedTo, req.DueDate)
	h.writeMutation(w, http.StatusOK, "item", item, err)
}

// Return handles POST /api/items/{id}/return.
func (h *ItemsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.ReturnItem(r.Context(), GetWorkspace(r.Context()), id, req.Quantity)
	h.writeMutation(w, http.StatusOK, "item", item, err)
}

// SetCondition handles PUT /api/items/{id}/condition.
func (h *ItemsHandler) SetCondition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req conditionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.SetItemCondition(r.Context(), GetWorkspace(r.Context()), id, req.Condition)
	h.writeMutation(w, http.StatusOK, "item", item, err)
}

// confirmation reads the confirm query parameter.
func confirmation(r *http.Request) store.Confirmation {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return store.Confirmation(ok)
}
