package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Ferdismit7/qmstool-sub000/events"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades a dashboard client to a websocket and registers it
// with the hub. Browsers cannot set headers on websocket requests, so the
// token travels as a query param. A client only ever receives events for
// business areas in its own scope.
func EventsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	events.RegisterClient(conn, claims.BusinessAreas)
	utils.InfoLogger.Printf("Events client connected (user=%d, areas=%d)",
		claims.UserID, len(claims.BusinessAreas))

	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
