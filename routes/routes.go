package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/papillonstore/papillon-api/controllers/order"
	"github.com/papillonstore/papillon-api/services"
)

// Deps bundles the shared services the route groups need.
type Deps struct {
	DB        *gorm.DB
	Store     *services.OrderStore
	Stock     *services.VariantStock
	Lifecycle *services.OrderLifecycle
	Hub       *orderControllers.Hub
}

// SetupRoutes is the single entry point that wires up the order and admin
// route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupOrderRoutes(r, deps)

	SetupAdminRoutes(r, deps)
}
