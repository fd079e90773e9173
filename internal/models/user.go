package models

type User struct {
	ID        string `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"` // Never return password in JSON
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// Profile holds the display data created alongside every user identity.
type Profile struct {
	UserID    string `json:"user_id" db:"user_id"`
	FullName  string `json:"full_name" db:"full_name"`
	Phone     string `json:"phone" db:"phone"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// UserRole maps a user to a role tag. A user may carry several rows;
// "admin" wins when resolving the effective role at login.
type UserRole struct {
	ID     int    `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Role   string `json:"role" db:"role"` // "admin" or "user"
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

func (u *User) ToUserResponse(profile *Profile, role string) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
	if profile != nil {
		resp.FullName = profile.FullName
		resp.Phone = profile.Phone
	}
	return resp
}

// FCMToken represents a registered push-notification device token.
type FCMToken struct {
	ID         int    `json:"id" db:"id"`
	UserID     string `json:"user_id" db:"user_id"`
	Token      string `json:"token" db:"token"`
	DeviceType string `json:"device_type" db:"device_type"` // "ios" or "android"
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	UpdatedAt  int64  `json:"updated_at" db:"updated_at"`
}
