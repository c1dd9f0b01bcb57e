// Package rest exposes the public HTTP API: authentication and session
// endpoints plus the villa catalogue. Handlers stay thin and delegate to
// the service layer; token checks run in middleware.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	signer    *auth.Signer
	sessions  *services.SessionService
	users     *services.UserService
	villas    *services.VillaService
	amenities *services.AmenityService
	images    *services.ImageService
}

func NewServer(address string, logger logging.Logger, signer *auth.Signer,
	sessions *services.SessionService, users *services.UserService,
	villas *services.VillaService, amenities *services.AmenityService,
	images *services.ImageService) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "rest_server"),
		signer:    signer,
		sessions:  sessions,
		users:     users,
		villas:    villas,
		amenities: amenities,
		images:    images,
	}
}

// Run serves the API until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Routes builds the gin engine with all API routes registered. Split out
// from Run so handler tests can drive it through httptest.
func (s *Server) Routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh-token", s.refreshToken)

	authPrivate := authGroup.Group("/")
	authPrivate.Use(s.authMiddleware())
	authPrivate.POST("/revoke-token", s.revokeToken)
	authPrivate.POST("/logout-all", s.logoutAll)
	authPrivate.GET("/sessions", s.listSessions)

	api.GET("/villas", s.listVillas)
	api.GET("/villas/:id", s.getVilla)
	api.GET("/villas/:id/amenities", s.listAmenities)
	api.GET("/amenities/:id", s.getAmenity)

	admin := api.Group("/")
	admin.Use(s.authMiddleware(), s.requireRole(adminRole))
	admin.POST("/villas", s.createVilla)
	admin.PUT("/villas/:id", s.updateVilla)
	admin.DELETE("/villas/:id", s.deleteVilla)
	admin.POST("/villas/:id/image", s.villaImageUploadURL)
	admin.PUT("/villas/:id/image", s.confirmVillaImage)
	admin.POST("/villas/:id/amenities", s.createAmenity)
	admin.PUT("/amenities/:id", s.updateAmenity)
	admin.DELETE("/amenities/:id", s.deleteAmenity)

	return engine
}
