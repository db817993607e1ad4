package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type ControlOrderRepository interface {
	Create(order *models.ControlOrder) error
	GetByID(id uint) (*models.ControlOrder, error)
	GetAll() ([]models.ControlOrder, error)
	GetByProductionOrder(productionOrderID uint) ([]models.ControlOrder, error)
	GetByWarehouseOrder(warehouseOrderID uint) ([]models.ControlOrder, error)
	CountByProductionOrder(productionOrderID uint) (total, completed int64, err error)
	CountByWarehouseOrder(warehouseOrderID uint) (total, completed int64, err error)
	Update(order *models.ControlOrder) error
	TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error)
}

type controlOrderRepository struct {
	db *gorm.DB
}

func NewControlOrderRepository(db *gorm.DB) ControlOrderRepository {
	return &controlOrderRepository{db: db}
}

func (r *controlOrderRepository) Create(order *models.ControlOrder) error {
	return r.db.Create(order).Error
}

func (r *controlOrderRepository) GetByID(id uint) (*models.ControlOrder, error) {
	var order models.ControlOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *controlOrderRepository) GetAll() ([]models.ControlOrder, error) {
	var orders []models.ControlOrder
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *controlOrderRepository) GetByProductionOrder(productionOrderID uint) ([]models.ControlOrder, error) {
	var orders []models.ControlOrder
	err := r.db.Where("production_order_id = ?", productionOrderID).Find(&orders).Error
	return orders, err
}

func (r *controlOrderRepository) GetByWarehouseOrder(warehouseOrderID uint) ([]models.ControlOrder, error) {
	var orders []models.ControlOrder
	err := r.db.Where("warehouse_order_id = ?", warehouseOrderID).Find(&orders).Error
	return orders, err
}

func (r *controlOrderRepository) CountByProductionOrder(productionOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.ControlOrder{}, "production_order_id", productionOrderID)
}

func (r *controlOrderRepository) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.ControlOrder{}, "warehouse_order_id", warehouseOrderID)
}

func (r *controlOrderRepository) Update(order *models.ControlOrder) error {
	return r.db.Save(order).Error
}

func (r *controlOrderRepository) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	return transitionStatus(r.db, &models.ControlOrder{}, id, to, from)
}
