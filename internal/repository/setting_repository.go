package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type SettingRepository interface {
	Get(settingName string) (*models.Setting, error)
	Create(setting *models.Setting) error
	Update(setting *models.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(settingName string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.Where("setting_name = ? AND is_active = ?", settingName, true).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Create(setting *models.Setting) error {
	return r.db.Create(setting).Error
}

func (r *settingRepository) Update(setting *models.Setting) error {
	return r.db.Save(setting).Error
}
