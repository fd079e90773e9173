package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"rentwheels-backend/internal/models"
	"rentwheels-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// GetCars returns the public catalog: available cars only, newest first.
// An optional ?category= query param narrows the list; empty or "all"
// returns every available car.
func GetCars(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		var cars []models.Car
		err := db.Select(&cars, `
			SELECT id, name, category, brand, model, year, price_per_day, status,
			       seats, transmission, fuel_type, description, features, image_url,
			       created_at, updated_at
			FROM cars
			WHERE status = 'available'
			ORDER BY created_at DESC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch cars")
			return
		}

		responses := make([]models.CarResponse, 0, len(cars))
		for _, car := range cars {
			if car.MatchesCategory(category) {
				responses = append(responses, car.ToCarResponse())
			}
		}

		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

// GetCar returns one car regardless of status, so a detail page can still
// show a car that just went to maintenance.
func GetCar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Car id is required")
			return
		}

		var car models.Car
		err := db.Get(&car, "SELECT * FROM cars WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Car not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondJSON(w, http.StatusOK, car.ToCarResponse())
	}
}

// QuoteCar computes the rental price for a date range without writing
// anything. Invalid dates are rejected before any arithmetic.
func QuoteCar(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Car id is required")
			return
		}

		var req models.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		start, end, err := parseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var car models.Car
		dbErr := db.Get(&car, "SELECT * FROM cars WHERE id = $1", id)
		if dbErr == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Car not found")
			return
		}
		if dbErr != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		days, total, err := models.QuoteTotal(car.PricePerDay, start, end)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		utils.RespondJSON(w, http.StatusOK, models.QuoteResponse{
			CarID:       car.ID,
			PricePerDay: car.PricePerDay,
			Days:        days,
			TotalPrice:  total,
		})
	}
}

// parseDateRange parses YYYY-MM-DD bounds and applies the strict
// end-after-start rule shared by quotes and bookings.
func parseDateRange(startStr, endStr string) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return start, end, errMissingDates
	}
	start, err = time.Parse(models.DateLayout, startStr)
	if err != nil {
		return start, end, errBadDateFormat
	}
	end, err = time.Parse(models.DateLayout, endStr)
	if err != nil {
		return start, end, errBadDateFormat
	}
	if !end.After(start) {
		return start, end, models.ErrInvalidDateRange
	}
	return start, end, nil
}
