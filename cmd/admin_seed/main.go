package main

import (
	"context"
	"flag"
	"log"
	"os"

	"dentalbooks/internal/config"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/user"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate every table before seeding")
	flag.Parse()

	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialise database: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
		}
	}()

	// a promoted user's cached row must be invalidated
	cacheService := repositories.InitCache()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.Printf("⚠️ Redis unavailable, seeding without cache: %v", err)
		_ = cacheService.Close()
		cacheService = nil
	} else {
		defer cacheService.Close()
	}

	if *reset {
		if err := repositories.ResetDatabase(db); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
		// ids restart, so every cached row is stale
		if cacheService != nil {
			if err := cacheService.FlushAll(context.Background()); err != nil {
				log.Printf("⚠️ Failed to flush Redis cache: %v", err)
			}
		}
		log.Println("Database reset")
	}

	userService := user.NewService(repositories.NewUserRepository(db, cacheService), repositories.NewClinicRepository(db))
	admin, err := userService.EnsureAdmin(context.Background(), adminEmail, adminName, adminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Printf("✅ Admin account ready (id=%d)", admin.ID)
}
