package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/service"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type CreateItemRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Metadata    domain.Metadata `json:"metadata"`
	Position    *int            `json:"position"`
}

type UpdateItemRequest struct {
	RankingID   string          `json:"rankingId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Metadata    domain.Metadata `json:"metadata"`
	Position    *int            `json:"position"`
}

type ReorderRequest struct {
	ItemIDs []string `json:"itemIds"`
}

type ItemsResponse struct {
	Items []*domain.RankingItem `json:"items"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	rankingID := chi.URLParam(r, "rankingId")

	items, err := h.itemService.ListItems(r.Context(), rankingID)
	if err != nil {
		writeServiceError(w, "item.List", err)
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	rankingID := chi.URLParam(r, "rankingId")

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), service.CreateItemInput{
		RankingID:   rankingID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    req.Metadata,
		Position:    req.Position,
	})
	if err != nil {
		writeServiceError(w, "item.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), service.UpdateItemInput{
		ID:          id,
		RankingID:   req.RankingID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Metadata:    req.Metadata,
		Position:    req.Position,
	})
	if err != nil {
		writeServiceError(w, "item.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		writeServiceError(w, "item.Delete", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ItemHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	rankingID := chi.URLParam(r, "rankingId")

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.itemService.ReorderItems(r.Context(), rankingID, req.ItemIDs)
	if err != nil {
		writeServiceError(w, "item.Reorder", err)
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

func (h *ItemHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.itemService.MoveUp(r.Context(), id)
	if err != nil {
		writeServiceError(w, "item.MoveUp", err)
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

func (h *ItemHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.itemService.MoveDown(r.Context(), id)
	if err != nil {
		writeServiceError(w, "item.MoveDown", err)
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}
