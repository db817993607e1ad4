package repository

import (
	"errors"

	"production_control/internal/models"

	"gorm.io/gorm"
)

var ErrFulfillExceedsQuantity = errors.New("fulfilled quantity would exceed requested quantity")

type LineItemRepository interface {
	Create(item *models.OrderLineItem) error
	GetByID(id uint) (*models.OrderLineItem, error)
	GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderLineItem, error)
	Update(item *models.OrderLineItem) error
	// AddFulfilled increments the fulfilled quantity, enforcing
	// fulfilled <= requested in a single conditional UPDATE.
	AddFulfilled(id uint, qty int) error
}

type lineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(item *models.OrderLineItem) error {
	return r.db.Create(item).Error
}

func (r *lineItemRepository) GetByID(id uint) (*models.OrderLineItem, error) {
	var item models.OrderLineItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lineItemRepository) GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	err := r.db.Where("order_type = ? AND order_id = ?", string(orderType), orderID).
		Order("id").Find(&items).Error
	return items, err
}

func (r *lineItemRepository) Update(item *models.OrderLineItem) error {
	return r.db.Save(item).Error
}

func (r *lineItemRepository) AddFulfilled(id uint, qty int) error {
	res := r.db.Model(&models.OrderLineItem{}).
		Where("id = ? AND fulfilled_quantity + ? <= quantity", id, qty).
		Update("fulfilled_quantity", gorm.Expr("fulfilled_quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFulfillExceedsQuantity
	}
	return nil
}
