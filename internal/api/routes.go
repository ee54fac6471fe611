package api

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"djstore/internal/api/handlers"
	"djstore/internal/api/middleware"
	"djstore/internal/api/services"
	"djstore/internal/config"
	"djstore/internal/repository"
)

func SetupRoutes(e *echo.Echo, db *repository.Database, cfg *config.Config) error {
	e.Validator = NewValidator()

	healthHandler := handlers.NewHealthHandler(db)
	e.GET("/health", healthHandler.Live)
	e.GET("/status", healthHandler.Status)

	authService, err := services.NewAuthService(cfg)
	if err != nil {
		return err
	}

	apiGroup := e.Group("/api", middleware.WithDataContext(db.DB()))

	authHandler := handlers.NewAuthHandler(authService)
	apiGroup.POST("/auth/token", authHandler.Token)

	genreHandler := handlers.NewGenreHandler()
	artistHandler := handlers.NewArtistHandler()
	recordHandler := handlers.NewRecordHandler()
	orderHandler := handlers.NewOrderHandler()

	apiGroup.GET("/genres", genreHandler.List)
	apiGroup.GET("/genres/:id", genreHandler.Get)
	apiGroup.GET("/artists", artistHandler.List)
	apiGroup.GET("/artists/:id", artistHandler.Get)
	apiGroup.GET("/records", recordHandler.List)
	apiGroup.GET("/records/:id", recordHandler.Get)

	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.GET("/orders/:id", orderHandler.Get)
	apiGroup.GET("/orders/:id/invoice", orderHandler.Invoice)
	apiGroup.POST("/orders/:id/cancel", orderHandler.Cancel)
	apiGroup.DELETE("/orders/:id/items/:item_id", orderHandler.RemoveItem)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTKey),
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		},
	}

	adminGroup := apiGroup.Group("", echojwt.WithConfig(jwtConfig))
	adminGroup.POST("/genres", genreHandler.Create)
	adminGroup.PUT("/genres/:id", genreHandler.Update)
	adminGroup.DELETE("/genres/:id", genreHandler.Delete)
	adminGroup.POST("/artists", artistHandler.Create)
	adminGroup.PUT("/artists/:id", artistHandler.Update)
	adminGroup.DELETE("/artists/:id", artistHandler.Delete)
	adminGroup.POST("/records", recordHandler.Create)
	adminGroup.PUT("/records/:id", recordHandler.Update)
	adminGroup.DELETE("/records/:id", recordHandler.Delete)

	return nil
}
