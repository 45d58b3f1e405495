package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/response"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard query endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard/{category}?limit=N
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := model.Category(mux.Vars(r)["category"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	records, err := h.leaderboardService.TopScores(r.Context(), category, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewLeaderboardResponse(category, records))
}
