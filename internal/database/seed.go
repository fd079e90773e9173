package database

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers inserts the default admin and a demo customer if the users
// table is empty.
func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding default users...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userPassword, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		email    string
		password string
		fullName string
		phone    string
		role     string
	}{
		{"admin@rentwheels.com", string(adminPassword), "Fleet Admin", "+1 555 0100", "admin"},
		{"demo@rentwheels.com", string(userPassword), "Demo Customer", "+1 555 0101", "user"},
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, u := range users {
		id := uuid.New().String()

		if _, err := tx.Exec(`
			INSERT INTO users (id, email, password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, id, u.email, u.password, now); err != nil {
			return err
		}

		if _, err := tx.Exec(`
			INSERT INTO profiles (user_id, full_name, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, id, u.fullName, u.phone, now); err != nil {
			return err
		}

		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		`, id, u.role); err != nil {
			return err
		}

		log.Printf("   👤 %s (%s)", u.email, u.role)
	}

	return tx.Commit()
}

// SeedCars inserts a starter fleet if the cars table is empty.
func SeedCars(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM cars"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Cars already seeded, skipping...")
		return nil
	}

	cars := []struct {
		name         string
		category     string
		brand        string
		model        string
		year         int
		pricePerDay  float64
		status       string
		seats        int
		transmission string
		fuelType     string
		description  string
		features     []string
	}{
		{"Toyota Camry", "sedan", "Toyota", "Camry", 2023, 55, "available", 5, "automatic", "gasoline",
			"Comfortable mid-size sedan, great for city and highway.", []string{"Bluetooth", "Backup camera", "Cruise control"}},
		{"Honda CR-V", "suv", "Honda", "CR-V", 2023, 70, "available", 5, "automatic", "gasoline",
			"Spacious compact SUV with plenty of cargo room.", []string{"AWD", "Apple CarPlay", "Heated seats"}},
		{"Tesla Model 3", "electric", "Tesla", "Model 3", 2024, 95, "available", 5, "automatic", "electric",
			"Long-range electric sedan with autopilot.", []string{"Autopilot", "Supercharging", "Premium audio"}},
		{"BMW 5 Series", "luxury", "BMW", "530i", 2023, 140, "available", 5, "automatic", "gasoline",
			"Executive sedan with a refined interior.", []string{"Leather seats", "Sunroof", "Navigation"}},
		{"Ford Mustang", "sports", "Ford", "Mustang GT", 2022, 120, "available", 4, "manual", "gasoline",
			"5.0L V8 coupe for the weekend.", []string{"V8 engine", "Launch control", "Premium audio"}},
		{"Chrysler Pacifica", "van", "Chrysler", "Pacifica", 2022, 85, "available", 7, "automatic", "gasoline",
			"Seven-seat minivan for family trips.", []string{"Sliding doors", "Rear entertainment", "Stow'n Go seats"}},
		{"Mercedes-Benz S-Class", "luxury", "Mercedes-Benz", "S 500", 2024, 220, "maintenance", 5, "automatic", "gasoline",
			"Flagship luxury sedan.", []string{"Massage seats", "Burmester audio", "Night vision"}},
		{"Hyundai Elantra", "sedan", "Hyundai", "Elantra", 2023, 45, "available", 5, "automatic", "gasoline",
			"Budget-friendly compact sedan.", []string{"Bluetooth", "Lane assist"}},
	}

	log.Printf("🌱 Seeding %d cars...", len(cars))

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, c := range cars {
		if _, err := tx.Exec(`
			INSERT INTO cars (
				id, name, category, brand, model, year, price_per_day, status,
				seats, transmission, fuel_type, description, features, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		`, uuid.New().String(), c.name, c.category, c.brand, c.model, c.year, c.pricePerDay,
			c.status, c.seats, c.transmission, c.fuelType, c.description, pq.Array(c.features), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
