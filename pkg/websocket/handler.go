package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	hub        *Hub
	onLocation LocationFunc
}

// NewHandler starts the hub. onLocation is invoked for every driver position
// published over a socket; pass the same persistence path the REST handler
// uses.
func NewHandler(onLocation LocationFunc) *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub:        hub,
		onLocation: onLocation,
	}
}

func (h *Handler) Hub() *Hub {
	return h.hub
}

// NotifyAssignment pushes an emergency lifecycle event to the patient's
// personal room. No-op when the patient has no open socket.
func (h *Handler) NotifyAssignment(patientID, emergencyID, driverID, event string) {
	h.hub.SendToUser(patientID, Message{
		Type:      "emergency_" + event,
		UserID:    patientID,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"emergency_id": emergencyID,
			"driver_id":    driverID,
		},
	})
}

// HandleWebSocket upgrades an authenticated request. The auth middleware must
// have run first; user_id and user_role come from it.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("user_role")
	if userID == "" || role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userID, role, h.onLocation)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
