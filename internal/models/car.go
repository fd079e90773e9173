package models

import "github.com/lib/pq"

// CarStatus represents the rental status of a car
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusRented      CarStatus = "rented"
	CarStatusMaintenance CarStatus = "maintenance"
)

// Car categories shown in the catalog filter
var ValidCarCategories = map[string]bool{
	"sedan":    true,
	"suv":      true,
	"luxury":   true,
	"sports":   true,
	"electric": true,
	"van":      true,
}

type Car struct {
	ID           string         `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Category     string         `json:"category" db:"category"`
	Brand        string         `json:"brand" db:"brand"`
	Model        string         `json:"model" db:"model"`
	Year         int            `json:"year" db:"year"`
	PricePerDay  float64        `json:"price_per_day" db:"price_per_day"`
	Status       CarStatus      `json:"status" db:"status"`
	Seats        int            `json:"seats" db:"seats"`
	Transmission string         `json:"transmission" db:"transmission"` // "automatic" or "manual"
	FuelType     string         `json:"fuel_type" db:"fuel_type"`
	Description  *string        `json:"description,omitempty" db:"description"`
	Features     pq.StringArray `json:"features" db:"features"`
	ImageURL     *string        `json:"image_url,omitempty" db:"image_url"`
	CreatedAt    int64          `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt    int64          `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// CarResponse is what we send to the client
type CarResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PricePerDay  float64   `json:"price_per_day"`
	Status       CarStatus `json:"status"`
	Seats        int       `json:"seats"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuel_type"`
	Description  *string   `json:"description,omitempty"`
	Features     []string  `json:"features"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    int64     `json:"created_at"`
}

// CreateCarRequest is the request body for POST /api/admin/cars
type CreateCarRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	PricePerDay  float64  `json:"price_per_day"`
	Status       string   `json:"status"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	Description  *string  `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
}

// UpdateCarRequest is the request body for PATCH /api/admin/cars/:id.
// Nil fields are left unchanged.
type UpdateCarRequest struct {
	Name        *string  `json:"name,omitempty"`
	Status      *string  `json:"status,omitempty"`
	PricePerDay *float64 `json:"price_per_day,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// ToCarResponse converts a Car to CarResponse
func (c *Car) ToCarResponse() CarResponse {
	features := []string(c.Features)
	if features == nil {
		features = []string{}
	}
	return CarResponse{
		ID:           c.ID,
		Name:         c.Name,
		Category:     c.Category,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		PricePerDay:  c.PricePerDay,
		Status:       c.Status,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Description:  c.Description,
		Features:     features,
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
	}
}

// MatchesCategory reports whether the car passes the catalog category filter.
// An empty filter or "all" keeps every car.
func (c *Car) MatchesCategory(category string) bool {
	return category == "" || category == "all" || c.Category == category
}
