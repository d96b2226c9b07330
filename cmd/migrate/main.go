package main

import (
	"log"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed states and genres
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	// Seed sample venues, artists and shows
	if cfg.SeedSample {
		if err := database.SeedSampleData(db); err != nil {
			log.Fatal("Failed to seed sample data:", err)
		}
	}

	log.Println("Database migration and seeding completed successfully")
}
