package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/papillonstore/papillon-api/services"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------

type OrderLineRequest struct {
	ProductID     *string         `json:"product_id"`
	VariantID     *string         `json:"variant_id"`
	ProductName   string          `json:"product_name" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity" binding:"required"`
	SelectedSize  string          `json:"selected_size"`
	SelectedColor string          `json:"selected_color"`
}

type PlaceOrderRequest struct {
	CustomerFirstName string             `json:"customer_first_name" binding:"required"`
	CustomerLastName  string             `json:"customer_last_name"`
	CustomerPhone     string             `json:"customer_phone" binding:"required"`
	WilayaID          *string            `json:"wilaya_id"`
	MunicipalityName  string             `json:"municipality_name"`
	Address           string             `json:"address"`
	DeliveryType      string             `json:"delivery_type"`
	Items             []OrderLineRequest `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrWindowExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toOrderItems(lines []OrderLineRequest) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID:     l.ProductID,
			VariantID:     l.VariantID,
			ProductName:   l.ProductName,
			Price:         l.Price,
			Quantity:      l.Quantity,
			SelectedSize:  l.SelectedSize,
			SelectedColor: l.SelectedColor,
		})
	}
	return items
}

// -------- Handlers --------

// ListOrdersHandler returns the working view of the order book. Confirmed
// orders older than 5 days are hidden unless ?all=1 is passed.
func ListOrdersHandler(lifecycle *services.OrderLifecycle, store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter services.OrderFilter
		if statusStr := c.Query("status"); statusStr != "" {
			status, err := models.ParseOrderStatus(statusStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Status = status
		}
		filter.Search = c.Query("q")

		var orders []models.Order
		var err error
		if c.Query("all") == "1" {
			orders, err = store.List(c.Request.Context(), filter)
		} else {
			orders, err = lifecycle.VisibleOrders(c.Request.Context(), filter)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrderHandler(store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.Get(c.Request.Context(), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PlaceOrderHandler creates a manual (phone) order. Stock is reserved
// immediately, not at confirmation.
func PlaceOrderHandler(lifecycle *services.OrderLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		deliveryType := models.DeliveryHome
		if req.DeliveryType == string(models.DeliveryDesk) {
			deliveryType = models.DeliveryDesk
		}
		customer := services.CustomerInfo{
			FirstName:    req.CustomerFirstName,
			LastName:     req.CustomerLastName,
			Phone:        req.CustomerPhone,
			WilayaID:     req.WilayaID,
			Municipality: req.MunicipalityName,
			Address:      req.Address,
			DeliveryType: deliveryType,
		}
		order, err := lifecycle.PlaceManualOrder(c.Request.Context(), customer, toOrderItems(req.Items))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// UpdateOrderStatusHandler runs one lifecycle transition and returns the
// authoritative new state of the order.
func UpdateOrderStatusHandler(lifecycle *services.OrderLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := lifecycle.Transition(c.Request.Context(), c.Param("orderID"), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UndoConfirmationHandler takes a confirmed order back to pending within the
// 24h window.
func UndoConfirmationHandler(lifecycle *services.OrderLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := lifecycle.UndoConfirmation(c.Request.Context(), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrderHandler deletes an order without touching stock. Cancel first
// when the inventory should be restored.
func DeleteOrderHandler(lifecycle *services.OrderLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := lifecycle.DeleteOrder(c.Request.Context(), c.Param("orderID")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
