package routes

import (
	"github.com/gin-gonic/gin"

	dashboardController "github.com/papillonstore/papillon-api/controllers/dashboard"
	productcontroller "github.com/papillonstore/papillon-api/controllers/product"
	settingsController "github.com/papillonstore/papillon-api/controllers/settings"
	wilayaController "github.com/papillonstore/papillon-api/controllers/wilaya"
)

func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/products")
	{
		products.GET("/", productcontroller.GetProducts(deps.DB))
		products.GET("/:id", productcontroller.GetProduct(deps.DB))
		products.POST("/", productcontroller.CreateProduct(deps.DB))
		products.PUT("/:id", productcontroller.UpdateProduct(deps.DB))
		products.DELETE("/:id", productcontroller.DeleteProduct(deps.DB, deps.Store))

		// Manual stock correction on one variant
		products.PUT("/variants/:id/stock", productcontroller.AdjustVariantStock(deps.Stock))
	}

	categories := r.Group("/categories")
	{
		categories.GET("/", productcontroller.GetAllCategories(deps.DB))
		categories.POST("/", productcontroller.CreateCategory(deps.DB))
		categories.PUT("/:id", productcontroller.UpdateCategory(deps.DB))
		categories.DELETE("/:id", productcontroller.DeleteCategory(deps.DB))
	}

	wilayas := r.Group("/wilayas")
	{
		wilayas.GET("/", wilayaController.GetWilayas(deps.DB))
		wilayas.POST("/", wilayaController.CreateWilaya(deps.DB))
		wilayas.PUT("/:id", wilayaController.UpdateWilaya(deps.DB))
		wilayas.DELETE("/:id", wilayaController.DeleteWilaya(deps.DB))
	}

	settings := r.Group("/settings")
	{
		settings.GET("/", settingsController.GetSettings(deps.DB))
		settings.PUT("/", settingsController.UpdateSettings(deps.DB))
		settings.GET("/about-us", settingsController.GetAboutUs(deps.DB))
		settings.PUT("/about-us", settingsController.UpdateAboutUs(deps.DB))
	}

	r.GET("/dashboard/stats", dashboardController.GetStats(deps.DB))
}
