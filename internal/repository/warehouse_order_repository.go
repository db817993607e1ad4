package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type WarehouseOrderRepository interface {
	Create(order *models.WarehouseOrder) error
	// CreateWithItems persists the order and its line items in one
	// transaction so a half-created replenishment order can never be seen.
	CreateWithItems(order *models.WarehouseOrder, items []models.OrderLineItem) error
	GetByID(id uint) (*models.WarehouseOrder, error)
	GetAll() ([]models.WarehouseOrder, error)
	GetByCustomerOrder(customerOrderID uint) ([]models.WarehouseOrder, error)
	CountByCustomerOrder(customerOrderID uint) (total, completed int64, err error)
	Update(order *models.WarehouseOrder) error
	TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error)
}

type warehouseOrderRepository struct {
	db *gorm.DB
}

func NewWarehouseOrderRepository(db *gorm.DB) WarehouseOrderRepository {
	return &warehouseOrderRepository{db: db}
}

func (r *warehouseOrderRepository) Create(order *models.WarehouseOrder) error {
	return r.db.Create(order).Error
}

func (r *warehouseOrderRepository) CreateWithItems(order *models.WarehouseOrder, items []models.OrderLineItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderType = string(models.TypeWarehouseOrder)
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *warehouseOrderRepository) GetByID(id uint) (*models.WarehouseOrder, error) {
	var order models.WarehouseOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *warehouseOrderRepository) GetAll() ([]models.WarehouseOrder, error) {
	var orders []models.WarehouseOrder
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *warehouseOrderRepository) GetByCustomerOrder(customerOrderID uint) ([]models.WarehouseOrder, error) {
	var orders []models.WarehouseOrder
	err := r.db.Where("customer_order_id = ?", customerOrderID).Find(&orders).Error
	return orders, err
}

func (r *warehouseOrderRepository) CountByCustomerOrder(customerOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.WarehouseOrder{}, "customer_order_id", customerOrderID)
}

func (r *warehouseOrderRepository) Update(order *models.WarehouseOrder) error {
	return r.db.Save(order).Error
}

func (r *warehouseOrderRepository) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	return transitionStatus(r.db, &models.WarehouseOrder{}, id, to, from)
}

func countByParent(db *gorm.DB, model interface{}, column string, parentID uint) (int64, int64, error) {
	var total, completed int64
	if err := db.Model(model).Where(column+" = ?", parentID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := db.Model(model).Where(column+" = ? AND status = ?", parentID, string(models.StatusCompleted)).
		Count(&completed).Error
	return total, completed, err
}
