package roomhandler

import (
	"net/http"

	"chatrelay/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler exposes the small read-only REST surface next to the websocket
// protocol: liveness plus a room existence probe for the join form.
type Handler struct {
	hub *ws.Hub
}

func New(hub *ws.Hub) *Handler { return &Handler{hub: hub} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.health)
	r.GET("/rooms/:id", h.info)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) info(c *gin.Context) {
	id := c.Param("id")
	n, ok := h.hub.MemberCount(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid room id"})
		return
	}
	c.JSON(http.StatusOK, RoomInfoResponse{RoomID: id, Members: n})
}
