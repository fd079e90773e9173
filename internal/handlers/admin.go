package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"rentwheels-backend/internal/models"
	"rentwheels-backend/internal/services"
	"rentwheels-backend/internal/websocket"
	"rentwheels-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// GetAllCars returns the full fleet regardless of status, newest first.
func GetAllCars(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cars []models.Car
		err := db.Select(&cars, `
			SELECT id, name, category, brand, model, year, price_per_day, status,
			       seats, transmission, fuel_type, description, features, image_url,
			       created_at, updated_at
			FROM cars
			ORDER BY created_at DESC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch cars")
			return
		}

		responses := make([]models.CarResponse, len(cars))
		for i := range cars {
			responses[i] = cars[i].ToCarResponse()
		}

		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

func CreateCar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(req.Name) == "" || req.Brand == "" || req.Model == "" {
			utils.RespondError(w, http.StatusBadRequest, "Name, brand, and model are required")
			return
		}
		if !models.ValidCarCategories[req.Category] {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		if req.PricePerDay <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "Price per day must be positive")
			return
		}

		status := req.Status
		if status == "" {
			status = string(models.CarStatusAvailable)
		}
		validStatuses := map[string]bool{"available": true, "rented": true, "maintenance": true}
		if !validStatuses[status] {
			utils.RespondError(w, http.StatusBadRequest, "Status must be 'available', 'rented', or 'maintenance'")
			return
		}

		transmission := req.Transmission
		if transmission == "" {
			transmission = "automatic"
		}
		if transmission != "automatic" && transmission != "manual" {
			utils.RespondError(w, http.StatusBadRequest, "Transmission must be 'automatic' or 'manual'")
			return
		}

		seats := req.Seats
		if seats == 0 {
			seats = 5
		}

		car := models.Car{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(req.Name),
			Category:     req.Category,
			Brand:        req.Brand,
			Model:        req.Model,
			Year:         req.Year,
			PricePerDay:  req.PricePerDay,
			Status:       models.CarStatus(status),
			Seats:        seats,
			Transmission: transmission,
			FuelType:     req.FuelType,
			Description:  req.Description,
			Features:     pq.StringArray(req.Features),
			ImageURL:     req.ImageURL,
			CreatedAt:    time.Now().Unix(),
			UpdatedAt:    time.Now().Unix(),
		}

		if _, err := db.Exec(`
			INSERT INTO cars (
				id, name, category, brand, model, year, price_per_day, status,
				seats, transmission, fuel_type, description, features, image_url,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, car.ID, car.Name, car.Category, car.Brand, car.Model, car.Year, car.PricePerDay,
			car.Status, car.Seats, car.Transmission, car.FuelType, car.Description,
			pq.Array([]string(car.Features)), car.ImageURL, car.CreatedAt, car.UpdatedAt); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create car")
			return
		}

		log.Printf("✅ Car created: %s (%s)", car.Name, car.ID)
		utils.RespondJSON(w, http.StatusCreated, car.ToCarResponse())
	}
}

// UpdateCar applies a partial update; nil fields are left untouched.
func UpdateCar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Car id is required")
			return
		}

		var req models.UpdateCarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var existing models.Car
		err := db.Get(&existing, "SELECT * FROM cars WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Car not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if req.Name != nil {
			existing.Name = strings.TrimSpace(*req.Name)
		}
		if req.Status != nil {
			validStatuses := map[string]bool{"available": true, "rented": true, "maintenance": true}
			if !validStatuses[*req.Status] {
				utils.RespondError(w, http.StatusBadRequest, "Invalid status")
				return
			}
			existing.Status = models.CarStatus(*req.Status)
		}
		if req.PricePerDay != nil {
			if *req.PricePerDay <= 0 {
				utils.RespondError(w, http.StatusBadRequest, "Price per day must be positive")
				return
			}
			existing.PricePerDay = *req.PricePerDay
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.ImageURL != nil {
			existing.ImageURL = req.ImageURL
		}
		existing.UpdatedAt = time.Now().Unix()

		if _, err := db.Exec(`
			UPDATE cars
			SET name = $1, status = $2, price_per_day = $3, description = $4,
			    image_url = $5, updated_at = $6
			WHERE id = $7
		`, existing.Name, existing.Status, existing.PricePerDay, existing.Description,
			existing.ImageURL, existing.UpdatedAt, id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update car")
			return
		}

		utils.RespondJSON(w, http.StatusOK, existing.ToCarResponse())
	}
}

func DeleteCar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Car id is required")
			return
		}

		result, err := db.Exec("DELETE FROM cars WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete car")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete car")
			return
		}
		if rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Car not found")
			return
		}

		log.Printf("🗑️  Car deleted: %s", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetAllBookings lists every booking for the admin dashboard, joined with
// the booking user's email and the car.
func GetAllBookings(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []models.BookingRow
		err := db.Select(&rows, `
			SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date,
			       b.total_price, b.status, b.created_at, b.updated_at,
			       c.name AS car_name, c.brand AS car_brand, c.model AS car_model,
			       u.email AS user_email
			FROM bookings b
			JOIN cars c ON c.id = b.car_id
			JOIN users u ON u.id = b.user_id
			ORDER BY b.created_at DESC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch bookings")
			return
		}

		responses := make([]models.BookingResponse, len(rows))
		for i := range rows {
			responses[i] = rows[i].ToBookingResponse()
		}

		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingStatus sets a booking to any of the five known statuses.
// Only set membership is validated; the transition graph is not enforced.
// On success the owning user gets a websocket event and, when a device
// token is registered, a push notification.
func UpdateBookingStatus(db *sqlx.DB, wsHub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Booking id is required")
			return
		}

		var req UpdateBookingStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !models.ValidBookingStatus(req.Status) {
			utils.RespondError(w, http.StatusBadRequest,
				"Status must be one of 'pending', 'confirmed', 'active', 'completed', 'cancelled'")
			return
		}

		var booking models.Booking
		err := db.Get(&booking, "SELECT * FROM bookings WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		booking.Status = models.BookingStatus(req.Status)
		booking.UpdatedAt = time.Now().Unix()

		if _, err := db.Exec(`
			UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3
		`, booking.Status, booking.UpdatedAt, id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update booking")
			return
		}

		log.Printf("✅ Booking %s status → %s", id, booking.Status)

		if wsHub != nil {
			wsHub.BroadcastToUser(booking.UserID, websocket.BookingEvent{
				Type:    websocket.EventBookingStatus,
				Booking: booking.ToBookingResponse(),
			})
		}

		if fcm != nil {
			var tokens []string
			if err := db.Select(&tokens, "SELECT token FROM fcm_tokens WHERE user_id = $1", booking.UserID); err == nil && len(tokens) > 0 {
				if err := fcm.SendBookingStatusNotification(tokens, booking.ID, string(booking.Status)); err != nil {
					log.Printf("⚠️  Push notification failed: %v", err)
				}
			}
		}

		utils.RespondJSON(w, http.StatusOK, booking.ToBookingResponse())
	}
}

type GrantRoleRequest struct {
	Role string `json:"role"` // "admin" or "user"
}

// GrantRole assigns a role to a user. This is the out-of-band path for
// promoting admins; signup only ever hands out 'user'.
func GrantRole(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")
		if userID == "" {
			utils.RespondError(w, http.StatusBadRequest, "User id is required")
			return
		}

		var req GrantRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Role != "admin" && req.Role != "user" {
			utils.RespondError(w, http.StatusBadRequest, "Role must be 'admin' or 'user'")
			return
		}

		var exists string
		if err := db.Get(&exists, "SELECT id FROM users WHERE id = $1", userID); err != nil {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}

		if _, err := db.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
			ON CONFLICT (user_id, role) DO NOTHING
		`, userID, req.Role); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to grant role")
			return
		}

		log.Printf("✅ Role '%s' granted to user %s", req.Role, userID)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user_id": userID,
			"role":    req.Role,
		})
	}
}

// GetAllUsers lists users with profile and effective role for the dashboard.
func GetAllUsers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type userRow struct {
			models.User
			FullName string `db:"full_name"`
			Phone    string `db:"phone"`
			Role     string `db:"role"`
		}

		var rows []userRow
		err := db.Select(&rows, `
			SELECT u.id, u.email, u.password, u.created_at, u.updated_at,
			       COALESCE(p.full_name, '') AS full_name,
			       COALESCE(p.phone, '') AS phone,
			       COALESCE((
			           SELECT role FROM user_roles ur
			           WHERE ur.user_id = u.id
			           ORDER BY CASE WHEN role = 'admin' THEN 0 ELSE 1 END
			           LIMIT 1
			       ), 'user') AS role
			FROM users u
			LEFT JOIN profiles p ON p.user_id = u.id
			ORDER BY u.created_at DESC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		responses := make([]models.UserResponse, len(rows))
		for i, row := range rows {
			profile := models.Profile{UserID: row.ID, FullName: row.FullName, Phone: row.Phone}
			responses[i] = row.User.ToUserResponse(&profile, row.Role)
		}

		utils.RespondJSON(w, http.StatusOK, responses)
	}
}
