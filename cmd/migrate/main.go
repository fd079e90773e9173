package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Read and execute migration file
	migrationPath := "migrations/seed_fleet.sql"
	migrationSQL, err := os.ReadFile(migrationPath)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	log.Printf("Executing migration: %s\n", migrationPath)

	_, err = db.Exec(string(migrationSQL))
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully!")

	// Query and display summary
	var result struct {
		TotalCars       int `db:"total_cars"`
		AvailableCars   int `db:"available_cars"`
		RentedCars      int `db:"rented_cars"`
		MaintenanceCars int `db:"maintenance_cars"`
	}

	query := `
		SELECT
			COUNT(*) AS total_cars,
			COUNT(CASE WHEN status = 'available' THEN 1 END) AS available_cars,
			COUNT(CASE WHEN status = 'rented' THEN 1 END) AS rented_cars,
			COUNT(CASE WHEN status = 'maintenance' THEN 1 END) AS maintenance_cars
		FROM cars
	`

	err = db.Get(&result, query)
	if err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("FLEET SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Total cars:         %d\n", result.TotalCars)
	fmt.Printf("Available:          %d\n", result.AvailableCars)
	fmt.Printf("Rented:             %d\n", result.RentedCars)
	fmt.Printf("In maintenance:     %d\n", result.MaintenanceCars)
	fmt.Println("============================================================")
}
