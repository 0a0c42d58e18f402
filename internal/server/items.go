package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/inventory/internal/formatter"
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/desertthunder/inventory/internal/validation"
	"github.com/desertthunder/inventory/internal/viewmodels"
)

const maxBodyBytes = 1 << 16

var _ Handler = (*ItemsHandler)(nil)

// ItemsHandler serves the items API.
type ItemsHandler struct {
	repo     models.ItemsRepository
	home     *viewmodels.HomeViewModel
	currency *formatter.Currency
	logger   *log.Logger
	mux      *http.ServeMux
	routes   []string
}

// itemResponse is the JSON form of one item.
type itemResponse struct {
	models.Item
	FormattedPrice string `json:"formatted_price"`
	OutOfStock     bool   `json:"out_of_stock"`
}

type itemsResponse struct {
	Items []itemResponse `json:"items"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// NewItemsHandler creates an ItemsHandler over repo.
func NewItemsHandler(repo models.ItemsRepository, c *formatter.Currency, logger *log.Logger) *ItemsHandler {
	if c == nil {
		c = formatter.DefaultCurrency()
	}

	h := &ItemsHandler{
		repo:     repo,
		home:     viewmodels.NewHomeViewModel(repo),
		currency: c,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	for pattern, fn := range map[string]http.HandlerFunc{
		"GET /items":            h.list,
		"POST /items":           h.create,
		"GET /items/stream":     h.stream,
		"GET /items/{id}":       h.show,
		"PUT /items/{id}":       h.update,
		"DELETE /items/{id}":    h.delete,
		"POST /items/{id}/sell": h.sell,
	} {
		h.mux.HandleFunc(pattern, fn)
		h.routes = append(h.routes, pattern)
	}

	return h
}

// Routes returns the method-qualified patterns this handler serves.
func (h *ItemsHandler) Routes() []string {
	return h.routes
}

func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	state, err := h.home.Snapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toItemsResponse(state.ItemList))
}

func (h *ItemsHandler) create(w http.ResponseWriter, r *http.Request) {
	details, err := decodeDetails(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	vm := viewmodels.NewItemEntryViewModel(h.repo)
	vm.UpdateUiState(details)

	id, err := vm.SaveItem(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if id == 0 {
		h.logger.Warn("insert ignored", "name", details.Name)
		writeJSON(w, http.StatusConflict, errorResponse{Error: "item was not added"})
		return
	}

	item := details.ToItem()
	item.ID = id
	w.Header().Set("Location", fmt.Sprintf("/items/%d", id))
	writeJSON(w, http.StatusCreated, h.toItemResponse(item))
}

func (h *ItemsHandler) show(w http.ResponseWriter, r *http.Request) {
	vm, err := h.detailsViewModel(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	state, err := vm.Snapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !state.Found {
		h.writeError(w, fmt.Errorf("%w: %d", shared.ErrItemNotFound, vm.ItemID()))
		return
	}

	writeJSON(w, http.StatusOK, h.toItemResponse(state.Details.ToItem()))
}

func (h *ItemsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	details, err := decodeDetails(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	vm, err := viewmodels.NewItemEditViewModel(h.repo, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := vm.Load(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	state := vm.UpdateUiState(details)
	if err := vm.UpdateItem(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toItemResponse(state.Details.ToItem()))
}

func (h *ItemsHandler) delete(w http.ResponseWriter, r *http.Request) {
	vm, err := h.detailsViewModel(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := vm.DeleteItem(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemsHandler) sell(w http.ResponseWriter, r *http.Request) {
	vm, err := h.detailsViewModel(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	item, err := vm.ReduceQuantityByOne(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toItemResponse(item))
}

// stream writes one "items" event per inventory change until the client goes away.
func (h *ItemsHandler) stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for state := range h.home.Watch(r.Context()) {
		event, payload := "items", any(h.toItemsResponse(state.ItemList))
		if state.Err != nil {
			event, payload = "error", errorResponse{Error: state.Err.Error()}
		}

		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("failed to encode event", "error", err)
			return
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			h.logger.Warn("stream flush failed", "error", err)
			return
		}
	}
}

func (h *ItemsHandler) detailsViewModel(r *http.Request) (*viewmodels.ItemDetailsViewModel, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return viewmodels.NewItemDetailsViewModel(h.repo, id)
}

func (h *ItemsHandler) toItemResponse(item models.Item) itemResponse {
	return itemResponse{Item: item, FormattedPrice: h.currency.FormatPrice(item), OutOfStock: !item.InStock()}
}

func (h *ItemsHandler) toItemsResponse(items []models.Item) itemsResponse {
	out := itemsResponse{Items: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, h.toItemResponse(item))
	}
	return out
}

// writeError maps err to a status code and writes it as an [errorResponse].
func (h *ItemsHandler) writeError(w http.ResponseWriter, err error) {
	var verrs validation.ValidationErrors
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verrs.Error(), Fields: verrs})
		return
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrTimeout):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: item id %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func decodeDetails(w http.ResponseWriter, r *http.Request) (models.ItemDetails, error) {
	var details models.ItemDetails

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&details); err != nil {
		return models.ItemDetails{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return details, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
