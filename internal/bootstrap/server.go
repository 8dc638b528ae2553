package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/travelbook/flightbooking/api"
	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/service/booking"
	"github.com/travelbook/flightbooking/internal/service/flights"
	"github.com/travelbook/flightbooking/internal/service/user"
)

const (
	shutdownTimeout = 5 * time.Second
	openAPIPath     = "/docs/openapi.json"
)

type Services struct {
	Bookings booking.BookingUseCase
	Users    user.UserUseCase
	Flights  flights.FlightUseCase
	Tokens   api.TokenVerifier
}

// Run serves the REST API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, svc Services) error {
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, log, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "address", cfg.HTTP.Address)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, log *zap.SugaredLogger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), api.CORS(cfg.HTTP.CORSOrigins))

	started := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile(openAPIPath, filepath.Join(cfg.HTTP.SwaggerDir, "openapi.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath))))
	}

	auth := api.Auth(svc.Tokens)
	root := router.Group("/api")

	api.NewUserHandler(svc.Users, auth).Register(root.Group("/users"))
	api.NewFlightHandler(svc.Flights).Register(root.Group("/flights"))
	api.NewBookingHandler(svc.Bookings).Register(root.Group("/bookings", auth))

	return router
}
