package handlers

import (
	"net/http"

	"production_control/internal/services"

	"github.com/gin-gonic/gin"
)

// QueryHandler serves the plain list/get endpoints per order level.
type QueryHandler struct {
	queryService services.QueryService
}

func NewQueryHandler(queryService services.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

func (h *QueryHandler) ListWarehouseOrders(c *gin.Context) {
	orders, err := h.queryService.ListWarehouseOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *QueryHandler) GetWarehouseOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, items, err := h.queryService.GetWarehouseOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

func (h *QueryHandler) ListProductionOrders(c *gin.Context) {
	orders, err := h.queryService.ListProductionOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *QueryHandler) GetProductionOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, items, err := h.queryService.GetProductionOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

func (h *QueryHandler) ListControlOrders(c *gin.Context) {
	orders, err := h.queryService.ListControlOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *QueryHandler) GetControlOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, items, err := h.queryService.GetControlOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

func (h *QueryHandler) ListWorkstationOrders(c *gin.Context) {
	orders, err := h.queryService.ListWorkstationOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *QueryHandler) GetWorkstationOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.queryService.GetWorkstationOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
