package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"taskhive/taskhive/services"
	"taskhive/taskhive/utils/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are filtered by the CORS middleware.
		return true
	},
}

// RegisterWebSocketRoutes exposes the event stream endpoint. Browsers
// cannot set headers on websocket requests, so the token is taken from
// the query string.
func RegisterWebSocketRoutes(router *gin.Engine, wsService services.WebSocketServiceInterface, jwtSecret []byte) {
	router.GET("/api/v1/ws", func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := token.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade websocket connection: %v", err)
			return
		}

		client := services.NewClient(uuid.New().String(), claims.UserID.String(), conn)
		wsService.RegisterClient(client)
	})
}
