package api

import (
	"net/http"

	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type refundResponse struct {
	Token  string  `json:"token"`
	Refund float64 `json:"refund"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/tickets", h.list)
	router.POST("/tickets", h.create)
	router.DELETE("/tickets/:token", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListTickets(c.Request.Context()))
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	token := c.Param("token")
	refund, err := h.service.CancelByToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, refundResponse{Token: token, Refund: refund})
}
