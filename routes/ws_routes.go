package routes

import (
	"swiftaid/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes mounts the live-tracking sockets. Drivers stream
// position updates; admins join the tracking room and receive the mirrored
// broadcasts. Both paths land on the same hub, which rooms clients by role.
func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler, authMW gin.HandlerFunc) {
	r.GET("/ws/driver", authMW, wsHandler.HandleWebSocket)
	r.GET("/ws/admin/tracking", authMW, wsHandler.HandleWebSocket)
}
