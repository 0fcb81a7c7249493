// internal/api/handlers/websocket_handler.go
package handlers

import (
	"log"
	"net/http"

	"equipment-inventory-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Hub *socket.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades the connection and subscribes the client to the
// change-history feed.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	actorID := c.GetString("actorID")
	if actorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown subscriber"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.Hub.Register(actorID, conn)

	go func() {
		defer func() {
			h.Hub.Unregister(actorID)
			conn.Close()
		}()
		for {
			// The feed is one-way; reads only detect the client going away.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
