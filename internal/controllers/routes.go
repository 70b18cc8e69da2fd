package controllers

import "github.com/gin-gonic/gin"

// Limits holds optional middleware for the route groups; nil entries are skipped.
type Limits struct {
	General gin.HandlerFunc // every /api route
	Schema  gin.HandlerFunc // routes that run DDL
}

// RegisterRoutes mounts the health check and the /api routes on router.
func RegisterRoutes(router *gin.Engine, health *HealthController, users *UserController, table *TableController, limits Limits) {
	// Health check endpoint (no rate limiting)
	router.GET("/health", health.Health)

	api := router.Group("/api", chain(limits.General)...)
	{
		api.GET("/users", users.GetUsers)
		api.GET("/table/GetColumns", table.GetColumns)

		schema := chain(limits.Schema)
		api.POST("/user/AddColumns", append(schema, table.AddColumns)...)
		api.DELETE("/table/RemoveColumn", append(schema, table.RemoveColumn)...)
		api.PUT("/table/RenameColumn", append(schema, table.RenameColumn)...)
	}
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
