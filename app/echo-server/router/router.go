package router

import (
	"shopPicks/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Generate)
	reco.GET("/collaborative", handler.Collaborative)
	reco.GET("/content-based", handler.ContentBased)
	reco.GET("/score", handler.Score)
	reco.GET("/stats", handler.Stats)
	reco.POST("/refresh", handler.Refresh)

	admin := api.Group("/admin/recommendations", authRequired, adminOnly)
	admin.POST("/refresh-expired", handler.RefreshExpired)
}

func SetupInteractionRoutes(api *echo.Group, handler *rest.InteractionHandler, authRequired echo.MiddlewareFunc) {
	interactions := api.Group("/interactions", authRequired)

	interactions.POST("", handler.Record)
	interactions.GET("", handler.ListMine)
	interactions.GET("/summary", handler.Summary)
	interactions.GET("/product/:id", handler.ListByProduct)
}

func SetupPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	preferences := api.Group("/preferences", authRequired)

	preferences.GET("", handler.Get)
	preferences.PATCH("", handler.Patch)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetCatalog, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}
