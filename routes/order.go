package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/papillonstore/papillon-api/controllers/order"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	{
		// Create a new order
		orders.POST("/place", orderControllers.PlaceOrderHandler(deps.Lifecycle))

		// Fetch orders (archived confirmed orders hidden unless ?all=1)
		orders.GET("/", orderControllers.ListOrdersHandler(deps.Lifecycle, deps.Store))

		// Fetch a single order with its lines
		orders.GET("/:orderID", orderControllers.GetOrderHandler(deps.Store))

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler(deps.Hub))

		// Update order status (e.g., shipped, cancelled)
		orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.Lifecycle))

		// Roll a confirmed order back to pending inside the undo window
		orders.POST("/:orderID/undo-confirmation", orderControllers.UndoConfirmationHandler(deps.Lifecycle))

		// Delete an order
		orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(deps.Lifecycle))

		// Notification feed
		orders.GET("/unread", orderControllers.UnreadOrdersHandler(deps.Store))
		orders.PUT("/:orderID/read", orderControllers.MarkOrderReadHandler(deps.Store))
		orders.PUT("/read-all", orderControllers.MarkAllReadHandler(deps.Store))

		// Excel export of the current view
		orders.GET("/export", orderControllers.ExportOrdersToExcel(deps.Store))
	}
}
