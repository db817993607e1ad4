package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *models.OrderEvent) error
	GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *models.OrderEvent) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderEvent, error) {
	var events []models.OrderEvent
	err := r.db.Where("order_type = ? AND order_id = ?", string(orderType), orderID).
		Order("id asc").Find(&events).Error
	return events, err
}
