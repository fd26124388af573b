package api

import (
	"net/http"

	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createAirlineRequest struct {
	Name string `json:"name"`
}

type repriceRequest struct {
	Price float64 `json:"price"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/airlines", h.listAirlines)
	router.POST("/airlines", h.createAirline)
	router.DELETE("/airlines/:airline", h.deleteAirline)
	router.GET("/flights", h.listFlights)
	router.POST("/airlines/:airline/flights", h.createFlight)
	router.DELETE("/airlines/:airline/flights/:flight", h.deleteFlight)
	router.PUT("/airlines/:airline/flights/:flight/price", h.reprice)
}

func (h *FlightHandler) listAirlines(c *gin.Context) {
	airlines := h.service.ListAirlines(c.Request.Context())
	names := make([]gin.H, 0, len(airlines))
	for _, a := range airlines {
		names = append(names, gin.H{"index": a.Index, "name": a.Name, "flights": len(a.Flights)})
	}
	c.JSON(http.StatusOK, names)
}

func (h *FlightHandler) listFlights(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListAirlines(c.Request.Context()))
}

func (h *FlightHandler) createAirline(c *gin.Context) {
	var req createAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	airline, err := h.service.CreateAirline(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airline)
}

func (h *FlightHandler) deleteAirline(c *gin.Context) {
	airline, err := positionParam(c, "airline")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.DeleteAirline(c.Request.Context(), airline); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) createFlight(c *gin.Context) {
	airline, err := positionParam(c, "airline")
	if err != nil {
		respondError(c, err)
		return
	}
	var req flights.CreateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.CreateFlight(c.Request.Context(), airline, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) deleteFlight(c *gin.Context) {
	airline, flight, ok := h.flightPosition(c)
	if !ok {
		return
	}
	voided, err := h.service.DeleteFlight(c.Request.Context(), airline, flight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voided_tickets": voided})
}

func (h *FlightHandler) reprice(c *gin.Context) {
	airline, flight, ok := h.flightPosition(c)
	if !ok {
		return
	}
	var req repriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.service.RepriceFlight(c.Request.Context(), airline, flight, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlightHandler) flightPosition(c *gin.Context) (int, int, bool) {
	airline, err := positionParam(c, "airline")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	flight, err := positionParam(c, "flight")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	return airline, flight, true
}
