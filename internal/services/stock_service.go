package services

import (
	"log"

	"production_control/internal/models"
)

// StockAPI is the slice of the stock client the adapter needs.
type StockAPI interface {
	GetQuantity(location, itemType string, itemID uint) (int, error)
	Adjust(location, itemType string, itemID uint, delta int, reason string) error
}

// StockService is the stock oracle. Every method returns a plain bool
// because callers branch business logic on the answer; a transport
// failure means "not available / not done", never an abort.
type StockService interface {
	CategoryForLocation(locationID string) models.ItemCategory
	CheckStock(locationID string, itemID uint, qty int) bool
	Debit(locationID string, itemID uint, qty int, reason string) bool
	Credit(locationID string, itemID uint, qty int, reason string) bool
}

type stockService struct {
	api       StockAPI
	locations map[string]models.ItemCategory
}

// NewStockService wires the location topology: each store deals in
// exactly one item category, so callers never pass the category
// explicitly.
func NewStockService(api StockAPI, rawStoreID, moduleStoreID, goodsStoreID string) StockService {
	return &stockService{
		api: api,
		locations: map[string]models.ItemCategory{
			rawStoreID:    models.CategoryPart,
			moduleStoreID: models.CategoryModule,
			goodsStoreID:  models.CategoryProduct,
		},
	}
}

func (s *stockService) CategoryForLocation(locationID string) models.ItemCategory {
	return s.locations[locationID]
}

func (s *stockService) CheckStock(locationID string, itemID uint, qty int) bool {
	category := s.locations[locationID]
	available, err := s.api.GetQuantity(locationID, string(category), itemID)
	if err != nil {
		log.Printf("stock check failed for %s item %d at %s: %v", category, itemID, locationID, err)
		return false
	}
	return available >= qty
}

func (s *stockService) Debit(locationID string, itemID uint, qty int, reason string) bool {
	category := s.locations[locationID]
	if err := s.api.Adjust(locationID, string(category), itemID, -qty, reason); err != nil {
		log.Printf("stock debit failed for %s item %d at %s: %v", category, itemID, locationID, err)
		return false
	}
	return true
}

func (s *stockService) Credit(locationID string, itemID uint, qty int, reason string) bool {
	category := s.locations[locationID]
	if err := s.api.Adjust(locationID, string(category), itemID, qty, reason); err != nil {
		log.Printf("stock credit failed for %s item %d at %s: %v", category, itemID, locationID, err)
		return false
	}
	return true
}
