package handlers

import (
	"net/http"

	"github.com/GastonDeS/SportMatch-Back/middleware"
	"github.com/GastonDeS/SportMatch-Back/services"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// JoinEvent godoc
// @Summary Request to join an event
// @Tags participants
// @Produce json
// @Success 201 {object} models.Participant
// @Failure 409 {object} map[string]string "Already requested"
// @Security BearerAuth
// @Router /events/{eventId}/participants [put]
func (h *ParticipantHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Join(r.Context(), eventID, callerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, participant, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaveEvent godoc
// @Summary Withdraw the caller's own participation
// @Tags participants
// @Success 204
// @Security BearerAuth
// @Router /events/{eventId}/participants [delete]
func (h *ParticipantHandler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.Leave(r.Context(), eventID, callerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants godoc
// @Summary List participants of an event with ratings and is-rated flags
// @Tags participants
// @Description status filters by participation state: accepted or pending.
// @Produce json
// @Success 200 {array} models.ParticipantDetail
// @Security BearerAuth
// @Router /events/{eventId}/owner/participants [get]
func (h *ParticipantHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if failures := validateQuery("GET /events/{eventId}/owner/participants", r.URL.Query()); failures != nil {
		failedValidationResponse(w, r, failures)
		return
	}

	var status *bool
	switch r.URL.Query().Get("status") {
	case "accepted":
		accepted := true
		status = &accepted
	case "pending":
		pending := false
		status = &pending
	}

	participants, err := h.participantService.GetParticipants(r.Context(), eventID, callerID, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, participants, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type participantTargetRequest struct {
	ParticipantID int `json:"participantId"`
}

// AcceptParticipant godoc
// @Summary Accept a pending participant, owner only
// @Tags participants
// @Accept json
// @Success 204
// @Failure 403 {object} map[string]string "Caller does not own the event"
// @Security BearerAuth
// @Router /events/{eventId}/owner/participants [put]
func (h *ParticipantHandler) AcceptParticipant(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input participantTargetRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.Accept(r.Context(), eventID, input.ParticipantID, callerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveParticipant godoc
// @Summary Remove a participant from an event, owner only
// @Tags participants
// @Accept json
// @Success 204
// @Failure 403 {object} map[string]string "Caller does not own the event"
// @Security BearerAuth
// @Router /events/{eventId}/owner/participants [delete]
func (h *ParticipantHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input participantTargetRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.RemoveAsOwner(r.Context(), eventID, input.ParticipantID, callerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
