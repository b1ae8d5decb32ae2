package handlers

import (
	"net/http"

	"limpflix/internal/infrastructure/realtime"
	"limpflix/pkg"

	"github.com/gin-gonic/gin"
)

var errMissingWSUserID = pkg.NewDomainErrorSimple("MISSING_USER_ID", "user_id query parameter is required", http.StatusBadRequest)

// WSHandler upgrades clients onto the realtime hub. Each user gets their own
// event stream; chat and booking updates are pushed as they happen.

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) Connect(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(errMissingWSUserID.HTTPStatus, errMissingWSUserID.ToHTTPError())
		return
	}

	realtime.ServeWS(c.Writer, c.Request, h.hub, userID)
}
