package services

import (
	"production_control/internal/models"
)

// ScenarioService classifies an order's line items against current
// stock. The result is re-derivable at any time: stock drifts between
// confirmation and execution, so a stored tag is advisory only.
type ScenarioService interface {
	Classify(locationID string, items []models.OrderLineItem) (models.ScenarioTag, error)
}

type scenarioService struct {
	stock    StockService
	settings SettingsService
}

func NewScenarioService(stock StockService, settings SettingsService) ScenarioService {
	return &scenarioService{stock: stock, settings: settings}
}

func (s *scenarioService) Classify(locationID string, items []models.OrderLineItem) (models.ScenarioTag, error) {
	if len(items) == 0 {
		return "", ErrEmptyOrder
	}

	totalQty := 0
	availableCount := 0
	for _, item := range items {
		totalQty += item.Quantity
		if s.stock.CheckStock(locationID, item.ItemID, item.Quantity) {
			availableCount++
		}
	}

	if availableCount == len(items) {
		return models.ScenarioDirectFulfillment, nil
	}
	// The threshold check dominates partial availability: large
	// shortfalls bypass replenishment and go straight to production.
	if totalQty >= s.settings.LotSizeThreshold() {
		return models.ScenarioDirectProduction, nil
	}
	if availableCount > 0 {
		return models.ScenarioPartialFulfillment, nil
	}
	return models.ScenarioWarehouseOrder, nil
}
