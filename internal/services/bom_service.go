package services

import (
	"fmt"

	"production_control/internal/models"
	"production_control/pkg/masterdata"
)

// MasterDataAPI is the slice of the master-data client the resolver
// needs.
type MasterDataAPI interface {
	GetProductModules(productID uint) ([]masterdata.Component, error)
	GetModuleParts(moduleID uint) ([]masterdata.Component, error)
	GetName(category string, itemID uint) string
}

type BOMService interface {
	// ResolveModulesForProduct expands one product quantity into required
	// module quantities. Missing composition data is a hard error; an
	// empty BOM must never silently mean "nothing required".
	ResolveModulesForProduct(productID uint, quantity int) (map[uint]int, error)
	ResolvePartsForModule(moduleID uint, quantity int) (map[uint]int, error)
	// ResolveOrderModules expands every product line item of an order and
	// merges the results by summing per module key.
	ResolveOrderModules(items []models.OrderLineItem) (map[uint]int, error)
	// ItemName looks up an item's display name for event descriptions,
	// degrading to a synthetic label when master data is unreachable.
	ItemName(category models.ItemCategory, itemID uint) string
}

type bomService struct {
	masterData MasterDataAPI
}

func NewBOMService(masterData MasterDataAPI) BOMService {
	return &bomService{masterData: masterData}
}

func (s *bomService) ResolveModulesForProduct(productID uint, quantity int) (map[uint]int, error) {
	components, err := s.masterData.GetProductModules(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve modules for product %d: %w", productID, err)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("product %d: %w", productID, ErrMissingBOM)
	}

	required := make(map[uint]int)
	for _, component := range components {
		required[component.ModuleID] += component.Qty * quantity
	}
	return required, nil
}

func (s *bomService) ResolvePartsForModule(moduleID uint, quantity int) (map[uint]int, error) {
	components, err := s.masterData.GetModuleParts(moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parts for module %d: %w", moduleID, err)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("module %d: %w", moduleID, ErrMissingBOM)
	}

	required := make(map[uint]int)
	for _, component := range components {
		required[component.PartID] += component.Qty * quantity
	}
	return required, nil
}

func (s *bomService) ItemName(category models.ItemCategory, itemID uint) string {
	return s.masterData.GetName(string(category), itemID)
}

func (s *bomService) ResolveOrderModules(items []models.OrderLineItem) (map[uint]int, error) {
	merged := make(map[uint]int)
	for _, item := range items {
		if item.ItemCategory != string(models.CategoryProduct) {
			continue
		}
		modules, err := s.ResolveModulesForProduct(item.ItemID, item.Quantity)
		if err != nil {
			return nil, err
		}
		for moduleID, qty := range modules {
			merged[moduleID] += qty
		}
	}
	return merged, nil
}
