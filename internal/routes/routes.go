package routes

import (
	"github.com/gin-gonic/gin"

	"personalsite/internal/authz"
	"personalsite/internal/handlers"
	"personalsite/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	contactHandler *handlers.ContactHandler,
	cvHandler *handlers.CVHandler,
	metaHandler *handlers.MetaHandler,
	systemHandler *handlers.SystemHandler,
) *gin.Engine {
	// ---- public
	r.GET("/healthz", systemHandler.Health)
	r.GET("/cv/:file", cvHandler.Get)

	api := r.Group("/api")
	{
		api.GET("/version", systemHandler.Version)
		api.GET("/meta", metaHandler.Get)
		api.POST("/contact", contactHandler.Submit)
	}

	// ---- admin
	admin := api.Group("/contact",
		middleware.AuthMiddleware(jwtSecret),
		middleware.RequireRoles(authz.RoleAdmin),
	)
	{
		admin.GET("", contactHandler.List)
		admin.POST("/:idAction", contactHandler.Handle)
	}

	return r
}
