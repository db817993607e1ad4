package migrations

import (
	"errors"
	"log"

	"production_control/internal/models"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default settings.
func RunMigrations(db *gorm.DB, defaultLotSizeThreshold int) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.CustomerOrder{},
		&models.WarehouseOrder{},
		&models.ProductionOrder{},
		&models.ControlOrder{},
		&models.WorkstationOrder{},
		&models.OrderLineItem{},
		&models.Setting{},
		&models.OrderEvent{},
		&models.WebhookSubscription{},
	)
	if err != nil {
		return err
	}

	if err := seedSettings(db, defaultLotSizeThreshold); err != nil {
		return err
	}

	log.Println("Database migrated successfully")
	return nil
}

func seedSettings(db *gorm.DB, defaultLotSizeThreshold int) error {
	var setting models.Setting
	err := db.Where("setting_name = ?", models.SettingLotSizeThreshold).First(&setting).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Printf("Seeding default lot-size threshold %d", defaultLotSizeThreshold)
	return db.Create(&models.Setting{
		SettingName: models.SettingLotSizeThreshold,
		IntValue:    defaultLotSizeThreshold,
		IsActive:    true,
	}).Error
}
