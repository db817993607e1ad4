package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type WorkstationOrderRepository interface {
	Create(order *models.WorkstationOrder) error
	GetByID(id uint) (*models.WorkstationOrder, error)
	GetAll() ([]models.WorkstationOrder, error)
	GetByControlOrder(controlOrderID uint) ([]models.WorkstationOrder, error)
	CountByControlOrder(controlOrderID uint) (total, completed int64, err error)
	CountByWarehouseOrder(warehouseOrderID uint) (total, completed int64, err error)
	Update(order *models.WorkstationOrder) error
	SetSecondaryFailure(id uint, note string) error
	TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error)
}

type workstationOrderRepository struct {
	db *gorm.DB
}

func NewWorkstationOrderRepository(db *gorm.DB) WorkstationOrderRepository {
	return &workstationOrderRepository{db: db}
}

func (r *workstationOrderRepository) Create(order *models.WorkstationOrder) error {
	return r.db.Create(order).Error
}

func (r *workstationOrderRepository) GetByID(id uint) (*models.WorkstationOrder, error) {
	var order models.WorkstationOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workstationOrderRepository) GetAll() ([]models.WorkstationOrder, error) {
	var orders []models.WorkstationOrder
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *workstationOrderRepository) GetByControlOrder(controlOrderID uint) ([]models.WorkstationOrder, error) {
	var orders []models.WorkstationOrder
	err := r.db.Where("control_order_id = ?", controlOrderID).Find(&orders).Error
	return orders, err
}

func (r *workstationOrderRepository) CountByControlOrder(controlOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.WorkstationOrder{}, "control_order_id", controlOrderID)
}

func (r *workstationOrderRepository) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	return countByParent(r.db, &models.WorkstationOrder{}, "warehouse_order_id", warehouseOrderID)
}

func (r *workstationOrderRepository) Update(order *models.WorkstationOrder) error {
	return r.db.Save(order).Error
}

func (r *workstationOrderRepository) SetSecondaryFailure(id uint, note string) error {
	return r.db.Model(&models.WorkstationOrder{}).Where("id = ?", id).
		Updates(map[string]interface{}{"secondary_failure": true, "secondary_failure_note": note}).Error
}

func (r *workstationOrderRepository) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	return transitionStatus(r.db, &models.WorkstationOrder{}, id, to, from)
}
