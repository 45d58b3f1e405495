package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/response"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/gamedata"
)

// GamedataHandler handles quiz data endpoints
type GamedataHandler struct {
	gamedataService *gamedata.Service
	wikiBaseURL     string
}

// NewGamedataHandler creates a new game data handler
func NewGamedataHandler(gamedataService *gamedata.Service, wikiBaseURL string) *GamedataHandler {
	return &GamedataHandler{
		gamedataService: gamedataService,
		wikiBaseURL:     wikiBaseURL,
	}
}

// Get handles GET /api/v1/gamedata/{category}
func (h *GamedataHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := model.Category(mux.Vars(r)["category"])

	items, err := h.gamedataService.Items(r.Context(), category)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// VillagerDetails handles GET /api/v1/gamedata/villagers/{name}
func (h *GamedataHandler) VillagerDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		WriteError(w, NewInvalidRequestError("villager name is required"))
		return
	}

	details, err := h.gamedataService.VillagerDetails(r.Context(), h.wikiBaseURL, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, details)
}
