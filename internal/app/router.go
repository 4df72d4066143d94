package app

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	authMiddleware "github.com/encurtador/shortener/internal/middleware/auth"
	ginLogger "github.com/encurtador/shortener/internal/middleware/logger"
)

func (a *App) SetupRouter() (*gin.Engine, error) {
	r := gin.New()
	if a.config.ProfileMode {
		pprof.Register(r)
	}

	r.Use(ginLogger.Logger(a.logger.Named("middleware")))

	requireAuth := authMiddleware.RequireAuth(a.resolver, a.config.DevMode)
	identify := authMiddleware.Identify(a.resolver)

	r.GET("/ping", a.Ping)
	r.GET("/:shortCode", a.RedirectToOriginal)

	api := r.Group("/api")
	{
		api.POST("/shorten", identify, a.ShortenURL)

		userAPI := api.Group("/user")
		{
			userAPI.POST("/register", a.Register)
			userAPI.POST("/login", a.Login)

			urlsAPI := userAPI.Group("/urls", requireAuth)
			{
				urlsAPI.GET("", a.GetUserRecords)
				urlsAPI.PUT("/:shortCode", a.UpdateUserURL)
				urlsAPI.DELETE("/:shortCode", a.DeleteUserURL)
			}
		}
	}

	return r, nil
}
