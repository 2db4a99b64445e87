package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airticket/api"
	"github.com/Domenick1991/airticket/config"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Flights    *api.FlightHandler
	Bookings   *api.BookingHandler
	Passengers *api.PassengerHandler
	Manager    *api.ManagerHandler
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers) error {
	router := gin.Default()

	handlers.Flights.Register(router.Group("/flights"))
	handlers.Bookings.Register(router.Group("/bookings"))
	handlers.Passengers.Register(router.Group("/passengers"))
	handlers.Manager.Register(router.Group("/manager"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
