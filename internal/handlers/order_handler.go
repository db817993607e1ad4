package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"production_control/internal/models"
	"production_control/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	fulfillmentService services.FulfillmentService
	completionService  services.CompletionService
	jobService         services.JobService
	webhookService     services.WebhookService
}

func NewOrderHandler(
	fulfillmentService services.FulfillmentService,
	completionService services.CompletionService,
	jobService services.JobService,
	webhookService services.WebhookService,
) *OrderHandler {
	return &OrderHandler{
		fulfillmentService: fulfillmentService,
		completionService:  completionService,
		jobService:         jobService,
		webhookService:     webhookService,
	}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingBOM):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type createOrderRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	LocationID   string `json:"location_id"`
	Notes        string `json:"notes"`
	Items        []struct {
		ItemCategory string `json:"item_category" binding:"required"`
		ItemID       uint   `json:"item_id" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,gt=0"`
	} `json:"items" binding:"required"`
}

func (h *OrderHandler) CreateCustomerOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order := &models.CustomerOrder{
		CustomerName: req.CustomerName,
		LocationID:   req.LocationID,
		Notes:        req.Notes,
	}
	items := make([]models.OrderLineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderLineItem{
			ItemCategory: item.ItemCategory,
			ItemID:       item.ItemID,
			Quantity:     item.Quantity,
		}
	}

	if err := h.fulfillmentService.CreateCustomerOrder(order, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	orders, err := h.fulfillmentService.ListCustomerOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetCustomerOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, items, err := h.fulfillmentService.GetCustomerOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

// ConfirmCustomerOrder runs classification plus scheduler notification
// as a tracked job because it fans out over several external calls.
func (h *OrderHandler) ConfirmCustomerOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	jobID, err := h.jobService.Submit("confirm_customer_order", func(report func(int, string)) (interface{}, error) {
		report(10, "classifying order")
		tag, err := h.fulfillmentService.ConfirmCustomerOrder(id)
		if err != nil {
			return nil, err
		}
		report(90, "scenario classified")
		return gin.H{"scenario": tag}, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (h *OrderHandler) FulfillCustomerOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	jobID, err := h.jobService.Submit("fulfill_customer_order", func(report func(int, string)) (interface{}, error) {
		report(10, "re-deriving scenario")
		result, err := h.fulfillmentService.ExecuteFulfillment(id)
		if err != nil {
			return nil, err
		}
		report(90, "fulfillment executed")
		return result, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (h *OrderHandler) CheckScenario(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	tag, err := h.fulfillmentService.CheckScenario(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenario": tag})
}

func (h *OrderHandler) CancelCustomerOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.fulfillmentService.CancelCustomerOrder(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *OrderHandler) ConfirmWarehouseOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	tag, err := h.fulfillmentService.ConfirmWarehouseOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenario": tag})
}

// DispatchProductionOrder expands a production order down to control and
// workstation orders as a tracked job.
func (h *OrderHandler) DispatchProductionOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	jobID, err := h.jobService.Submit("dispatch_production_order", func(report func(int, string)) (interface{}, error) {
		report(10, "resolving bill of materials")
		if err := h.fulfillmentService.DispatchProductionOrder(id); err != nil {
			return nil, err
		}
		report(90, "workstation orders created")
		return gin.H{"production_order_id": id}, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (h *OrderHandler) StartWorkstationOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.completionService.StartWorkstationOrder(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.StatusInProgress)})
}

func (h *OrderHandler) CompleteWorkstationOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.completionService.CompleteWorkstationOrder(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.StatusCompleted)})
}

// Transition serves the halt/resume/cancel endpoints for every level;
// the order type comes from the route.
func (h *OrderHandler) Transition(orderType models.OrderType, to models.OrderStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		if err := h.completionService.Transition(orderType, id, to); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": string(to)})
	}
}

func (h *OrderHandler) GetOrderEvents(orderType models.OrderType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := orderID(c)
		if !ok {
			return
		}
		events, err := h.webhookService.GetEvents(orderType, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}
