package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// One-off bootstrap: creates admin accounts directly in the database.
// Run with: go run add_admin_users.go
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("🔌 Connected to database")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admins := []struct {
		email    string
		fullName string
	}{
		{"ops@rentwheels.com", "Operations"},
		{"fleet@rentwheels.com", "Fleet Manager"},
	}

	now := time.Now().Unix()
	for _, a := range admins {
		var existingID string
		err := db.Get(&existingID, "SELECT id FROM users WHERE email = $1", a.email)
		if err == nil {
			// Already present: just make sure the admin role row exists
			if _, err := db.Exec(`
				INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
				ON CONFLICT (user_id, role) DO NOTHING
			`, existingID); err != nil {
				log.Fatalf("Failed to grant admin role to %s: %v", a.email, err)
			}
			log.Printf("✓ %s already exists, admin role ensured", a.email)
			continue
		}

		id := uuid.New().String()
		tx, err := db.Beginx()
		if err != nil {
			log.Fatalf("Failed to begin transaction: %v", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO users (id, email, password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
		`, id, a.email, string(adminPassword), now); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to create user %s: %v", a.email, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO profiles (user_id, full_name, phone, created_at, updated_at)
			VALUES ($1, $2, '', $3, $3)
		`, id, a.fullName, now); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to create profile for %s: %v", a.email, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
		`, id); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to assign admin role to %s: %v", a.email, err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit: %v", err)
		}

		log.Printf("✅ Admin created: %s", a.email)
	}

	log.Println("Done. Default password is admin123 — change it after first login.")
}
