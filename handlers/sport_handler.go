package handlers

import (
	"net/http"

	"github.com/GastonDeS/SportMatch-Back/services"
)

type SportHandler struct {
	sportService *services.SportService
}

func NewSportHandler(sportService *services.SportService) *SportHandler {
	return &SportHandler{sportService: sportService}
}

// GetSports godoc
// @Summary List every sport available for events
// @Tags sports
// @Produce json
// @Success 200 {array} models.Sport
// @Router /sports [get]
func (h *SportHandler) GetSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, sports, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
