package models

import (
	"errors"
	"math"
	"time"
)

// BookingStatus represents the current status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Created by the user, awaiting review
	BookingStatusConfirmed BookingStatus = "confirmed" // Approved by an admin
	BookingStatusActive    BookingStatus = "active"    // Car picked up
	BookingStatusCompleted BookingStatus = "completed" // Car returned
	BookingStatusCancelled BookingStatus = "cancelled" // Cancelled at any point
)

// ValidBookingStatus reports whether s is one of the five known statuses.
// Transitions between known statuses are not restricted; an admin may set
// any target status.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// ErrInvalidDateRange is returned when a quote's end date is not strictly
// after its start date.
var ErrInvalidDateRange = errors.New("end date must be after start date")

// QuoteTotal computes the rental price for a date range: price per day times
// the day span, partial days rounded up. Rejects end <= start.
func QuoteTotal(pricePerDay float64, start, end time.Time) (days int, total float64, err error) {
	if !end.After(start) {
		return 0, 0, ErrInvalidDateRange
	}
	days = int(math.Ceil(end.Sub(start).Hours() / 24))
	return days, pricePerDay * float64(days), nil
}

// Booking represents a reservation of one car for a contiguous date range
type Booking struct {
	ID         string        `json:"id" db:"id"`
	UserID     string        `json:"user_id" db:"user_id"`
	CarID      string        `json:"car_id" db:"car_id"`
	StartDate  time.Time     `json:"start_date" db:"start_date"`
	EndDate    time.Time     `json:"end_date" db:"end_date"`
	TotalPrice float64       `json:"total_price" db:"total_price"`
	Status     BookingStatus `json:"status" db:"status"`
	CreatedAt  int64         `json:"created_at" db:"created_at"`
	UpdatedAt  int64         `json:"updated_at" db:"updated_at"`
}

// BookingRow is a booking joined with its car (and, for admins, the booking
// user) for list views.
type BookingRow struct {
	Booking
	CarName   string  `json:"car_name" db:"car_name"`
	CarBrand  string  `json:"car_brand" db:"car_brand"`
	CarModel  string  `json:"car_model" db:"car_model"`
	UserEmail *string `json:"user_email,omitempty" db:"user_email"`
}

// BookingResponse is what we send to the client, with plain YYYY-MM-DD dates
type BookingResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	CarID      string        `json:"car_id"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	CarName    string        `json:"car_name,omitempty"`
	CarBrand   string        `json:"car_brand,omitempty"`
	CarModel   string        `json:"car_model,omitempty"`
	UserEmail  string        `json:"user_email,omitempty"`
	CreatedAt  int64         `json:"created_at"`
}

// CreateBookingRequest is the request body for POST /api/bookings
type CreateBookingRequest struct {
	CarID     string `json:"car_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// QuoteRequest is the request body for POST /api/cars/:id/quote
type QuoteRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// QuoteResponse is the computed price for a date range
type QuoteResponse struct {
	CarID       string  `json:"car_id"`
	PricePerDay float64 `json:"price_per_day"`
	Days        int     `json:"days"`
	TotalPrice  float64 `json:"total_price"`
}

const DateLayout = "2006-01-02"

// ToBookingResponse converts a Booking to BookingResponse
func (b *Booking) ToBookingResponse() BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		CarID:      b.CarID,
		StartDate:  b.StartDate.Format(DateLayout),
		EndDate:    b.EndDate.Format(DateLayout),
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

// ToBookingResponse converts a joined row to BookingResponse
func (r *BookingRow) ToBookingResponse() BookingResponse {
	resp := r.Booking.ToBookingResponse()
	resp.CarName = r.CarName
	resp.CarBrand = r.CarBrand
	resp.CarModel = r.CarModel
	if r.UserEmail != nil {
		resp.UserEmail = *r.UserEmail
	}
	return resp
}
