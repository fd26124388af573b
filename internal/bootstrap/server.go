package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/airdesk/api"
	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/state"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerDocument = "/swagger/catalog.swagger.json"

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, stateSvc state.StateUseCase) error {
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg.HTTP, flightSvc, bookingSvc, stateSvc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTP.Address).Info("http server listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	}
}

// NewHandler builds the API router and, when a swagger dir is configured,
// serves the OpenAPI document and its UI next to it.
func NewHandler(cfg config.HTTPConfig, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, stateSvc state.StateUseCase) http.Handler {
	router := api.NewRouter(flightSvc, bookingSvc, stateSvc)

	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDocument))))
	}
	return router
}
