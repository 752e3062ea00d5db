package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/GastonDeS/SportMatch-Back/live"
	"github.com/GastonDeS/SportMatch-Back/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	eventService *services.EventService
}

func NewWebSocketHandler(hub *live.Hub, eventService *services.EventService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, eventService: eventService}
}

// ServeEventFeed godoc
// @Summary Subscribe to the live participation feed of an event
// @Tags events
// @Router /events/{eventId}/live [get]
func (h *WebSocketHandler) ServeEventFeed(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.eventService.GetEventDetail(r.Context(), eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client, nothing more to send.
		logError(r, err)
		return
	}

	live.NewClient(h.hub, conn, eventID).Start()
}
