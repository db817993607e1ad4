package handlers

import (
	"net/http"

	"production_control/internal/models"
	"production_control/internal/services"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookService services.WebhookService
}

func NewWebhookHandler(webhookService services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

type createSubscriptionRequest struct {
	URL       string `json:"url" binding:"required"`
	OrderType string `json:"order_type"`
	EventType string `json:"event_type"`
}

func (h *WebhookHandler) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sub := &models.WebhookSubscription{
		URL:       req.URL,
		OrderType: req.OrderType,
		EventType: req.EventType,
		IsActive:  true,
	}
	if err := h.webhookService.CreateSubscription(sub); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *WebhookHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.webhookService.ListSubscriptions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *WebhookHandler) DeleteSubscription(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.webhookService.DeleteSubscription(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
