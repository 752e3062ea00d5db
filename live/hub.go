package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
)

// FeedMessage is the envelope pushed to subscribers of an event feed.
type FeedMessage struct {
	Type    string      `json:"type"` // PARTICIPANT_REQUESTED, PARTICIPANT_ACCEPTED, PARTICIPANT_REMOVED
	EventID int         `json:"eventId"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans event feed messages out to websocket subscribers. Subscribers
// are grouped into rooms keyed by event id; empty rooms are dropped.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			h.logger.Debug("feed client registered", slog.String("room", client.room))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, subscribed := clients[client]; subscribed {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("feed client unregistered", slog.String("room", client.room))
		}
	}
}

// NotifyEvent broadcasts a message to every subscriber of the event's room.
// Slow clients with a full send buffer are skipped rather than blocking the
// broadcast.
func (h *Hub) NotifyEvent(eventID int, messageType string, payload interface{}) {
	message, err := json.Marshal(FeedMessage{Type: messageType, EventID: eventID, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal feed message", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID(eventID)] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- message:
			default:
			}
		}
		client.mu.Unlock()
	}
}

func roomID(eventID int) string {
	return "event_" + strconv.Itoa(eventID)
}
