package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/service"
)

type RankingHandler struct {
	rankingService *service.RankingService
}

func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

type RankingResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
}

type RankingsResponse struct {
	Rankings []RankingResponse `json:"rankings"`
}

func (h *RankingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.rankingService.ListRankings(r.Context())
	if err != nil {
		writeServiceError(w, "ranking.GetAll", err)
		return
	}

	resp := RankingsResponse{Rankings: make([]RankingResponse, len(rankings))}
	for i, ranking := range rankings {
		resp.Rankings[i] = rankingResponse(ranking)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "rankingId")

	ranking, err := h.rankingService.GetRanking(r.Context(), idOrSlug)
	if err != nil {
		writeServiceError(w, "ranking.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, rankingResponse(ranking))
}

func rankingResponse(ranking *domain.Ranking) RankingResponse {
	var tags []string
	json.Unmarshal(ranking.Tags, &tags)

	return RankingResponse{
		ID:          ranking.ID,
		Title:       ranking.Title,
		Description: ranking.Description,
		Category:    ranking.Category,
		Status:      string(ranking.Status),
		Slug:        ranking.Slug,
		Tags:        tags,
		CreatedAt:   ranking.CreatedAt.Format(time.RFC3339),
	}
}
