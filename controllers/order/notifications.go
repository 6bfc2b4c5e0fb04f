package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/services"
)

// UnreadOrdersHandler feeds the notification bell: the newest unread orders
// and the total unread count.
func UnreadOrdersHandler(store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, count, err := store.Unread(c.Request.Context(), 10)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "unread_count": count})
	}
}

func MarkOrderReadHandler(store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.MarkRead(c.Request.Context(), c.Param("orderID")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order marked as read"})
	}
}

func MarkAllReadHandler(store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.MarkAllRead(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All orders marked as read"})
	}
}
