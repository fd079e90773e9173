package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"rentwheels-backend/internal/middleware"
	"rentwheels-backend/internal/models"
	"rentwheels-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

// isUniqueViolation reports whether err is Postgres error 23505
// (unique_violation).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// resolveRole returns the user's effective role; "admin" wins when both
// role rows exist.
func resolveRole(db *sqlx.DB, userID string) (string, error) {
	var role string
	err := db.Get(&role, `
		SELECT role FROM user_roles
		WHERE user_id = $1
		ORDER BY CASE WHEN role = 'admin' THEN 0 ELSE 1 END
		LIMIT 1
	`, userID)
	if err == sql.ErrNoRows {
		return "user", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func signToken(user *models.User, role string) (string, error) {
	jwtSecret := os.Getenv("APP_JWT_SECRET")
	if jwtSecret == "" {
		return "", jwt.ErrInvalidKey
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(jwtSecret))
}

// Signup creates a user identity plus its profile and default role row in
// one transaction, then returns a session token.
func Signup(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
			utils.RespondError(w, http.StatusBadRequest, "Email, password, and full name are required")
			return
		}

		log.Printf("🔐 Signup attempt for: %s", req.Email)

		var existingID string
		if err := db.Get(&existingID, "SELECT id FROM users WHERE email = $1", req.Email); err == nil {
			utils.RespondError(w, http.StatusConflict, "User with this email already exists")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			CreatedAt: time.Now().Unix(),
			UpdatedAt: time.Now().Unix(),
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`
			INSERT INTO users (id, email, password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, user.ID, user.Email, string(hashedPassword), user.CreatedAt, user.UpdatedAt); err != nil {
			// Two signups can race past the SELECT above; the unique index
			// on email decides the winner.
			if isUniqueViolation(err) {
				utils.RespondError(w, http.StatusConflict, "User with this email already exists")
				return
			}
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		if _, err := tx.Exec(`
			INSERT INTO profiles (user_id, full_name, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, user.ID, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Phone), user.CreatedAt, user.UpdatedAt); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create profile")
			return
		}

		// Everyone starts as a plain user; admin is granted separately
		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, 'user')
		`, user.ID); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to assign role")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		tokenString, err := signToken(&user, "user")
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		profile := models.Profile{UserID: user.ID, FullName: req.FullName, Phone: req.Phone}
		userResponse := user.ToUserResponse(&profile, "user")
		log.Printf("✅ Signup successful: %s", user.Email)

		utils.RespondJSON(w, http.StatusCreated, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		log.Printf("🔐 Login attempt for: %s", req.Email)

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE email = $1", req.Email); err != nil {
			log.Printf("❌ User not found: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		role, err := resolveRole(db, user.ID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to resolve role")
			return
		}

		tokenString, err := signToken(&user, role)
		if err != nil {
			log.Println("❌ Failed to create token")
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		var profile models.Profile
		if err := db.Get(&profile, "SELECT * FROM profiles WHERE user_id = $1", user.ID); err != nil {
			// Profile rows exist for every signup; tolerate a missing one anyway
			profile = models.Profile{UserID: user.ID}
		}

		userResponse := user.ToUserResponse(&profile, role)
		log.Printf("✅ Login successful: %s (%s)", user.Email, role)

		utils.RespondJSON(w, http.StatusOK, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// GetAuthStatus returns the authenticated user's identity and profile.
func GetAuthStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID); err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "Unknown user")
			return
		}

		var profile models.Profile
		if err := db.Get(&profile, "SELECT * FROM profiles WHERE user_id = $1", user.ID); err != nil {
			profile = models.Profile{UserID: user.ID}
		}

		userResponse := user.ToUserResponse(&profile, claims.Role)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"authenticated": true,
			"user":          userResponse,
		})
	}
}
