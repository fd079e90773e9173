package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"rentwheels-backend/internal/middleware"
	"rentwheels-backend/internal/models"
	"rentwheels-backend/internal/websocket"
	"rentwheels-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	errMissingDates  = errors.New("start date and end date are required")
	errBadDateFormat = errors.New("dates must be in YYYY-MM-DD format")
)

// CreateBooking inserts a pending booking for the authenticated user.
// The total price is always recomputed server-side from the car's current
// price per day; any client-supplied total is ignored.
func CreateBooking(db *sqlx.DB, wsHub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.CarID == "" {
			utils.RespondError(w, http.StatusBadRequest, "Car id is required")
			return
		}

		// Validation happens before any row is written
		start, end, err := parseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var car models.Car
		dbErr := db.Get(&car, "SELECT * FROM cars WHERE id = $1", req.CarID)
		if dbErr == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Car not found")
			return
		}
		if dbErr != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if car.Status != models.CarStatusAvailable {
			utils.RespondError(w, http.StatusConflict, "Car is not available")
			return
		}

		_, total, err := models.QuoteTotal(car.PricePerDay, start, end)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		booking := models.Booking{
			ID:         uuid.New().String(),
			UserID:     claims.UserID,
			CarID:      car.ID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: total,
			Status:     models.BookingStatusPending,
			CreatedAt:  time.Now().Unix(),
			UpdatedAt:  time.Now().Unix(),
		}

		if _, err := db.Exec(`
			INSERT INTO bookings (id, user_id, car_id, start_date, end_date, total_price, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, booking.ID, booking.UserID, booking.CarID, booking.StartDate, booking.EndDate,
			booking.TotalPrice, booking.Status, booking.CreatedAt, booking.UpdatedAt); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}

		log.Printf("✅ Booking created: %s (%s, $%.2f)", booking.ID, car.Name, total)

		// Live feed for the admin dashboard
		if wsHub != nil {
			wsHub.BroadcastToRole("admin", websocket.BookingEvent{
				Type:    websocket.EventBookingCreated,
				Booking: booking.ToBookingResponse(),
			})
		}

		utils.RespondJSON(w, http.StatusCreated, booking.ToBookingResponse())
	}
}

// GetMyBookings lists the caller's own bookings, newest first. Ownership is
// enforced in SQL, not just by the middleware.
func GetMyBookings(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var rows []models.BookingRow
		err := db.Select(&rows, `
			SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date,
			       b.total_price, b.status, b.created_at, b.updated_at,
			       c.name AS car_name, c.brand AS car_brand, c.model AS car_model
			FROM bookings b
			JOIN cars c ON c.id = b.car_id
			WHERE b.user_id = $1
			ORDER BY b.created_at DESC
		`, claims.UserID)
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

// GetMyBooking returns one booking owned by the caller. A booking that
// exists but belongs to someone else looks identical to a missing one.
func GetMyBooking(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Booking id is required")
			return
		}

		var row models.BookingRow
		err := db.Get(&row, `
			SELECT b.id, b.user_id, b.car_id, b.start_date, b.end_date,
			       b.total_price, b.status, b.created_at, b.updated_at,
			       c.name AS car_name, c.brand AS car_brand, c.model AS car_model
			FROM bookings b
			JOIN cars c ON c.id = b.car_id
			WHERE b.id = $1 AND b.user_id = $2
		`, id, claims.UserID)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondJSON(w, http.StatusOK, row.ToBookingResponse())
	}
}
