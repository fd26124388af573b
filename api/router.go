package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/state"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NewRouter mounts every handler under /api/v1.
func NewRouter(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, stateSvc state.StateUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logMiddleware())

	v1 := router.Group("/api/v1")
	NewFlightHandler(flightSvc).Register(v1)
	NewBookingHandler(bookingSvc).Register(v1)
	NewStateHandler(stateSvc).Register(v1)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":     c.Request.Method,
			"url":        c.Request.URL.String(),
			"status":     c.Writer.Status(),
			"remoteAddr": c.ClientIP(),
			"duration":   time.Since(start).String(),
		}).Info("handled request")
	}
}
