package main

import (
	"fmt"
	"log"

	"production_control/internal/config"
	"production_control/internal/database"
	"production_control/internal/migrations"
	"production_control/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db, cfg.LotSizeThreshold); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a catch-all webhook subscription for local development so
	// every audited event shows up somewhere visible.
	var count int64
	db.Model(&models.WebhookSubscription{}).Count(&count)
	if count == 0 {
		sub := &models.WebhookSubscription{
			URL:      "http://localhost:9090/events",
			IsActive: true,
		}
		if err := db.Create(sub).Error; err != nil {
			log.Fatal("Failed to seed webhook subscription:", err)
		}
		fmt.Println("Seeded development webhook subscription")
	}

	fmt.Println("Database initialized successfully")
}
