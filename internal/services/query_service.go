package services

import (
	"production_control/internal/models"
	"production_control/internal/repository"
)

// QueryService is the read side for operator front-ends: plain lookups
// per order level, with line items where the level carries them.
type QueryService interface {
	ListWarehouseOrders() ([]models.WarehouseOrder, error)
	GetWarehouseOrder(id uint) (*models.WarehouseOrder, []models.OrderLineItem, error)
	ListProductionOrders() ([]models.ProductionOrder, error)
	GetProductionOrder(id uint) (*models.ProductionOrder, []models.OrderLineItem, error)
	ListControlOrders() ([]models.ControlOrder, error)
	GetControlOrder(id uint) (*models.ControlOrder, []models.OrderLineItem, error)
	ListWorkstationOrders() ([]models.WorkstationOrder, error)
	GetWorkstationOrder(id uint) (*models.WorkstationOrder, error)
}

type queryService struct {
	warehouseRepo   repository.WarehouseOrderRepository
	productionRepo  repository.ProductionOrderRepository
	controlRepo     repository.ControlOrderRepository
	workstationRepo repository.WorkstationOrderRepository
	lineItemRepo    repository.LineItemRepository
}

func NewQueryService(
	warehouseRepo repository.WarehouseOrderRepository,
	productionRepo repository.ProductionOrderRepository,
	controlRepo repository.ControlOrderRepository,
	workstationRepo repository.WorkstationOrderRepository,
	lineItemRepo repository.LineItemRepository,
) QueryService {
	return &queryService{
		warehouseRepo:   warehouseRepo,
		productionRepo:  productionRepo,
		controlRepo:     controlRepo,
		workstationRepo: workstationRepo,
		lineItemRepo:    lineItemRepo,
	}
}

func (s *queryService) ListWarehouseOrders() ([]models.WarehouseOrder, error) {
	return s.warehouseRepo.GetAll()
}

func (s *queryService) GetWarehouseOrder(id uint) (*models.WarehouseOrder, []models.OrderLineItem, error) {
	order, err := s.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeWarehouseOrder, id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *queryService) ListProductionOrders() ([]models.ProductionOrder, error) {
	return s.productionRepo.GetAll()
}

func (s *queryService) GetProductionOrder(id uint) (*models.ProductionOrder, []models.OrderLineItem, error) {
	order, err := s.productionRepo.GetByID(id)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeProductionOrder, id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *queryService) ListControlOrders() ([]models.ControlOrder, error) {
	return s.controlRepo.GetAll()
}

func (s *queryService) GetControlOrder(id uint) (*models.ControlOrder, []models.OrderLineItem, error) {
	order, err := s.controlRepo.GetByID(id)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeControlOrder, id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *queryService) ListWorkstationOrders() ([]models.WorkstationOrder, error) {
	return s.workstationRepo.GetAll()
}

func (s *queryService) GetWorkstationOrder(id uint) (*models.WorkstationOrder, error) {
	order, err := s.workstationRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return order, nil
}
