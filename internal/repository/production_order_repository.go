package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type ProductionOrderRepository interface {
	Create(order *models.ProductionOrder) error
	CreateWithItems(order *models.ProductionOrder, items []models.OrderLineItem) error
	GetByID(id uint) (*models.ProductionOrder, error)
	GetAll() ([]models.ProductionOrder, error)
	GetByCustomerOrder(customerOrderID uint) ([]models.ProductionOrder, error)
	GetByWarehouseOrder(warehouseOrderID uint) ([]models.ProductionOrder, error)
	CountByCustomerOrder(customerOrderID uint) (total, completed int64, err error)
	CountByWarehouseOrder(warehouseOrderID uint) (total, completed int64, err error)
	Update(order *models.ProductionOrder) error
	TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error)
}

type productionOrderRepository struct {
	db *gorm.DB
}

func NewProductionOrderRepository(db *gorm.DB) ProductionOrderRepository {
	return &productionOrderRepository{db: db}
}

func (r *productionOrderRepository) Create(order *models.ProductionOrder) error {
	return r.db.Create(order).Error
}

func (r *productionOrderRepository) CreateWithItems(order *models.ProductionOrder, items []models.OrderLineItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderType = string(models.TypeProductionOrder)
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productionOrderRepository) GetByID(id uint) (*models.ProductionOrder, error) {
	var order models.ProductionOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *productionOrderRepository) GetAll() ([]models.ProductionOrder, error) {
	var orders []models.ProductionOrder
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *productionOrderRepository) GetByCustomerOrder(customerOrderID uint) ([]models.ProductionOrder, error) {
	var orders []models.ProductionOrder
	err := r.db.Where("customer_order_id = ?", customerOrderID).Find(&orders).Error
	return orders, err
}

func (r *productionOrderRepository) GetByWarehouseOrder(warehouseOrderID uint) ([]models.ProductionOrder, error) {
	var orders []models.ProductionOrder
	err := r.db.Where("warehouse_order_id = ?", warehouseOrderID).Find(&orders).Error
	return orders, err
}

func (r *productionOrderRepository) CountByCustomerOrder(customerOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.ProductionOrder{}, "customer_order_id", customerOrderID)
}

func (r *productionOrderRepository) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.ProductionOrder{}, "warehouse_order_id", warehouseOrderID)
}

func (r *productionOrderRepository) Update(order *models.ProductionOrder) error {
	return r.db.Save(order).Error
}

func (r *productionOrderRepository) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	return transitionStatus(r.db, &models.ProductionOrder{}, id, to, from)
}
