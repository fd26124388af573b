package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airdesk/internal/service/state"
	"github.com/gin-gonic/gin"
)

type StateHandler struct {
	service state.StateUseCase
}

func NewStateHandler(service state.StateUseCase) *StateHandler {
	return &StateHandler{service: service}
}

func (h *StateHandler) Register(router *gin.RouterGroup) {
	router.POST("/state/save", h.save)
	router.POST("/state/load", h.load)
	router.POST("/state/reset", h.reset)
}

func (h *StateHandler) save(c *gin.Context) {
	if err := h.service.Save(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *StateHandler) load(c *gin.Context) {
	h.respondLoaded(c, h.service.Load)
}

func (h *StateHandler) reset(c *gin.Context) {
	h.respondLoaded(c, h.service.RestoreDefaults)
}

// A missing snapshot is reported as 404 with the catalog left as it was.
func (h *StateHandler) respondLoaded(c *gin.Context, load func(ctx context.Context) (bool, error)) {
	ok, err := load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"loaded": false, "error": "snapshot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": true})
}
