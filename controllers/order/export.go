package orderControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/papillonstore/papillon-api/services"
	"github.com/tealeg/xlsx"
)

// ExportOrdersToExcel downloads the order book as an xlsx file. Honors the
// same status/q filters as the list endpoint, always including archived
// orders.
func ExportOrdersToExcel(store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.OrderFilter{Search: c.Query("q")}
		if statusStr := c.Query("status"); statusStr != "" {
			status, err := models.ParseOrderStatus(statusStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Status = status
		}

		orders, err := store.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "Customer", "Phone", "Wilaya", "Municipality",
			"DeliveryType", "Items", "TotalPrice", "Status", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			var items []string
			for _, it := range o.Items {
				items = append(items, it.ProductName+" x"+strconv.Itoa(it.Quantity))
			}
			wilayaName := ""
			if o.Wilaya != nil {
				wilayaName = o.Wilaya.Name
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CustomerName())
			row.AddCell().SetValue(o.CustomerPhone)
			row.AddCell().SetValue(wilayaName)
			row.AddCell().SetValue(o.MunicipalityName)
			row.AddCell().SetValue(string(o.DeliveryType))
			row.AddCell().SetValue(strings.Join(items, " + "))
			row.AddCell().SetValue(o.TotalPrice.String())
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.CreatedAt.Format(time.RFC3339))
		}

		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
