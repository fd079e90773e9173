package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentwheels-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

var carColumns = []string{
	"id", "name", "category", "brand", "model", "year", "price_per_day", "status",
	"seats", "transmission", "fuel_type", "description", "features", "image_url",
	"created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func carRow(rows *sqlmock.Rows, id, name, category string, price float64) *sqlmock.Rows {
	return rows.AddRow(id, name, category, "Brand", "Model", 2023, price, "available",
		5, "automatic", "gasoline", nil, "{}", nil, int64(1700000000), int64(1700000000))
}

func TestGetCarsReturnsAvailableCatalog(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(carColumns)
	carRow(rows, "c1", "Toyota Camry", "sedan", 55)
	carRow(rows, "c2", "Honda CR-V", "suv", 70)
	mock.ExpectQuery("SELECT (.+) FROM cars").WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	rec := httptest.NewRecorder()
	GetCars(db)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cars []models.CarResponse
	if err := json.NewDecoder(rec.Body).Decode(&cars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cars) != 2 {
		t.Errorf("got %d cars, want 2", len(cars))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetCarsCategoryFilterIsSubset(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(carColumns)
	carRow(rows, "c1", "Toyota Camry", "sedan", 55)
	carRow(rows, "c2", "Honda CR-V", "suv", 70)
	carRow(rows, "c3", "Mazda CX-5", "suv", 68)
	mock.ExpectQuery("SELECT (.+) FROM cars").WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/cars?category=suv", nil)
	rec := httptest.NewRecorder()
	GetCars(db)(rec, req)

	var cars []models.CarResponse
	if err := json.NewDecoder(rec.Body).Decode(&cars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("got %d cars, want 2", len(cars))
	}
	for _, c := range cars {
		if c.Category != "suv" {
			t.Errorf("car %s has category %s, want suv", c.ID, c.Category)
		}
	}
}

func TestGetCarsEmptyCatalogIsEmptyArray(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM cars").WillReturnRows(sqlmock.NewRows(carColumns))

	req := httptest.NewRequest(http.MethodGet, "/api/cars", nil)
	rec := httptest.NewRecorder()
	GetCars(db)(rec, req)

	body := strings.TrimSpace(rec.Body.String())
	if body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestGetCarNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM cars").WillReturnRows(sqlmock.NewRows(carColumns))

	req := httptest.NewRequest(http.MethodGet, "/api/cars/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(withRouteContext(req.Context(), rctx))
	rec := httptest.NewRecorder()
	GetCar(db)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestQuoteCarComputesTotal(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(carColumns)
	carRow(rows, "c1", "Toyota Camry", "sedan", 50)
	mock.ExpectQuery("SELECT \\* FROM cars").WillReturnRows(rows)

	body := strings.NewReader(`{"start_date":"2024-01-01","end_date":"2024-01-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cars/c1/quote", body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "c1")
	req = req.WithContext(withRouteContext(req.Context(), rctx))
	rec := httptest.NewRecorder()
	QuoteCar(db)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var quote models.QuoteResponse
	if err := json.NewDecoder(rec.Body).Decode(&quote); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if quote.Days != 2 || quote.TotalPrice != 100 {
		t.Errorf("quote = %d days / $%v, want 2 days / $100", quote.Days, quote.TotalPrice)
	}
}

func TestQuoteCarRejectsBadRangeBeforeQuerying(t *testing.T) {
	db, mock := newMockDB(t)
	// No query expectations: an invalid range must never reach the database

	body := strings.NewReader(`{"start_date":"2024-01-03","end_date":"2024-01-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cars/c1/quote", body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "c1")
	req = req.WithContext(withRouteContext(req.Context(), rctx))
	rec := httptest.NewRecorder()
	QuoteCar(db)(rec, req)

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
