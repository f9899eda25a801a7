package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/deep-blue-pool/poolchem_backend/config"
	"github.com/deep-blue-pool/poolchem_backend/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: .env file not found")
	}

	// Load configuration
	cfg := config.Load()

	log.Println("🔄 Connecting to database...")
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect: %v", err)
	}
	defer db.Close()

	log.Println("✅ Connected to database")
	log.Println("🗑️  Dropping all tables...")

	// Drop all tables in reverse dependency order
	tables := []string{
		"recommendations",
		"test_results",
		"tests",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		_, err := db.Exec(query)
		if err != nil {
			log.Printf("⚠️  Warning dropping %s: %v", table, err)
		} else {
			log.Printf("✅ Dropped table: %s", table)
		}
	}

	log.Println("")
	log.Println("✅ Database reset complete!")
	log.Println("🚀 Now run: go build -o server ./cmd/server && ./server")
	log.Println("   All migrations will be applied automatically on startup")
}
