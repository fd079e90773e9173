package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentwheels-backend/internal/middleware"
	"rentwheels-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingListColumns = []string{
	"id", "user_id", "car_id", "start_date", "end_date",
	"total_price", "status", "created_at", "updated_at",
	"car_name", "car_brand", "car_model",
}

func TestCreateBookingComputesPriceAndPending(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(carColumns)
	carRow(rows, "c1", "Toyota Camry", "sedan", 50)
	mock.ExpectQuery("SELECT \\* FROM cars").WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))

	body := strings.NewReader(`{"car_id":"c1","start_date":"2024-01-01","end_date":"2024-01-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", body)
	req = req.WithContext(withUserClaims(req.Context(), middleware.UserClaims{
		UserID: "u1", Email: "demo@rentwheels.com", Role: "user",
	}))
	rec := httptest.NewRecorder()
	CreateBooking(db, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var booking models.BookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&booking); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if booking.TotalPrice != 100 {
		t.Errorf("total_price = %v, want 100 (50/day x 2 days)", booking.TotalPrice)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.UserID != "u1" {
		t.Errorf("user_id = %s, want u1", booking.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateBookingRejectsEqualDatesWithoutQuerying(t *testing.T) {
	db, mock := newMockDB(t)
	// No expectations: validation fails before any request reaches the store

	body := strings.NewReader(`{"car_id":"c1","start_date":"2024-01-03","end_date":"2024-01-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", body)
	req = req.WithContext(withUserClaims(req.Context(), middleware.UserClaims{UserID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()
	CreateBooking(db, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "end date must be after start date") {
		t.Errorf("body = %s, want end-after-start message", rec.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateBookingRejectsMissingDates(t *testing.T) {
	db, _ := newMockDB(t)

	body := strings.NewReader(`{"car_id":"c1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", body)
	req = req.WithContext(withUserClaims(req.Context(), middleware.UserClaims{UserID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()
	CreateBooking(db, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBookingRejectsUnavailableCar(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(carColumns).AddRow(
		"c1", "BMW X5", "suv", "BMW", "X5", 2024, 160.0, "rented",
		5, "automatic", "gasoline", nil, "{}", nil, int64(1700000000), int64(1700000000))
	mock.ExpectQuery("SELECT \\* FROM cars").WillReturnRows(rows)

	body := strings.NewReader(`{"car_id":"c1","start_date":"2024-01-01","end_date":"2024-01-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", body)
	req = req.WithContext(withUserClaims(req.Context(), middleware.UserClaims{UserID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()
	CreateBooking(db, nil)(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetMyBookingsScopedToCaller(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(bookingListColumns).
		AddRow("b1", "u1", "c1", mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"),
			100.0, "pending", int64(1700000000), int64(1700000000),
			"Toyota Camry", "Toyota", "Camry")
	mock.ExpectQuery("FROM bookings b").WithArgs("u1").WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req = req.WithContext(withUserClaims(req.Context(), middleware.UserClaims{UserID: "u1", Role: "user"}))
	rec := httptest.NewRecorder()
	GetMyBookings(db)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var bookings []models.BookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&bookings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	if bookings[0].CarName != "Toyota Camry" {
		t.Errorf("car_name = %s, want Toyota Camry", bookings[0].CarName)
	}
	if bookings[0].StartDate != "2024-01-01" || bookings[0].EndDate != "2024-01-03" {
		t.Errorf("dates = %s..%s", bookings[0].StartDate, bookings[0].EndDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetMyBookingForeignRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	// The ownership predicate filters out rows that belong to someone else,
	// so the handler sees no rows at all.
	mock.ExpectQuery("FROM bookings b").WithArgs("b1", "u2").
		WillReturnRows(sqlmock.NewRows(bookingListColumns))

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b1", nil)
	rctx := newRouteContext("id", "b1")
	req = req.WithContext(withUserClaims(withRouteContext(req.Context(), rctx), middleware.UserClaims{UserID: "u2", Role: "user"}))
	rec := httptest.NewRecorder()
	GetMyBooking(db)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
