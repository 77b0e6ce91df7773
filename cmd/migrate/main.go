package main

import (
	"flag"
	"log"
	"path/filepath"

	"planner-api/database"
)

func main() {
	var (
		migrationsDir = flag.String("migrations-dir", "./migrations", "Directory containing migration files")
	)
	flag.Parse()

	config := database.LoadConfigFromEnv()

	// Connect to database
	db, err := database.Connect(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Get absolute path for migrations directory
	absPath, err := filepath.Abs(*migrationsDir)
	if err != nil {
		log.Fatalf("Failed to get absolute path for migrations directory: %v", err)
	}

	// Run migrations
	log.Printf("Running migrations from directory: %s", absPath)
	if err := database.Migrate(db, absPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("All migrations completed successfully!")
}
