package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/config"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/audit"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/auth"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/consumption"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/export"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/moneymove"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/product"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/stockpurchase"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/user"
	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	if _, err := database.Connect(cfg.DSN()); err != nil {
		return nil, err
	}

	if err := database.ConnectRedis(cfg); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			user.RegisterRoutes(authorized)
			product.RegisterRoutes(authorized)
			consumption.RegisterRoutes(authorized)
			moneymove.RegisterRoutes(authorized)
			audit.RegisterRoutes(authorized)
			export.RegisterRoutes(authorized)
			stockpurchase.RegisterRoutes(authorized)
		}
	}

	return router, nil
}
