package handlers

import (
	"net/http"

	"production_control/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetLotSizeThreshold(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lot_size_threshold": h.settingsService.LotSizeThreshold()})
}

type updateThresholdRequest struct {
	Value int `json:"value" binding:"required,gt=0"`
}

func (h *SettingsHandler) SetLotSizeThreshold(c *gin.Context) {
	var req updateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.settingsService.SetLotSizeThreshold(req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lot_size_threshold": req.Value})
}
