package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/middleware"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/request"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/response"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
)

// ScoreHandler handles score submission endpoints
type ScoreHandler struct {
	scoreService *score.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *score.Service) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// Submit handles POST /api/v1/submit-score
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	res, err := h.scoreService.Submit(r.Context(), user, model.Category(req.Category), req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponseFromResult(res))
}

// SubmitGuest handles POST /api/v1/submit-guest-score
func (h *ScoreHandler) SubmitGuest(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitGuestScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	res, err := h.scoreService.SubmitGuest(r.Context(),
		req.Token, req.DeviceID, req.Username,
		model.Category(req.Category), req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponseFromResult(res))
}
