package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type WebhookRepository interface {
	Create(sub *models.WebhookSubscription) error
	GetByID(id uint) (*models.WebhookSubscription, error)
	GetAll() ([]models.WebhookSubscription, error)
	GetActive() ([]models.WebhookSubscription, error)
	Delete(id uint) error
}

type webhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(sub *models.WebhookSubscription) error {
	return r.db.Create(sub).Error
}

func (r *webhookRepository) GetByID(id uint) (*models.WebhookSubscription, error) {
	var sub models.WebhookSubscription
	err := r.db.First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *webhookRepository) GetAll() ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	err := r.db.Find(&subs).Error
	return subs, err
}

func (r *webhookRepository) GetActive() ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	err := r.db.Where("is_active = ?", true).Find(&subs).Error
	return subs, err
}

func (r *webhookRepository) Delete(id uint) error {
	return r.db.Delete(&models.WebhookSubscription{}, id).Error
}
