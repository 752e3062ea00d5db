package handlers

import (
	"net/http"

	"github.com/GastonDeS/SportMatch-Back/middleware"
	"github.com/GastonDeS/SportMatch-Back/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// SearchEvents godoc
// @Summary Search events
// @Tags events
// @Description Filters: sportId (csv), userId, participantId, filterOut, location (csv), expertise, date (YYYY-MM-DD), schedule (csv of 0/1/2 time-of-day buckets), page, limit.
// @Produce json
// @Success 200 {object} services.EventPage
// @Failure 422 {object} map[string]map[string]string "Validation failures"
// @Router /events [get]
func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	if failures := validateQuery("GET /events", r.URL.Query()); failures != nil {
		failedValidationResponse(w, r, failures)
		return
	}

	page, err := h.eventService.SearchEvents(r.Context(), r.URL.Query())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, page, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEvent godoc
// @Summary Get one event with owner, occupancy and derived status
// @Tags events
// @Produce json
// @Success 200 {object} models.EventDetail
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{eventId} [get]
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	detail, err := h.eventService.GetEventDetail(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateEvent godoc
// @Summary Create an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Success 201 {object} models.Event
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), callerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, event, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
