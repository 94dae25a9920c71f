package entity

import "time"

// DefaultAvatar подставляется, если пользователь не загрузил свою аватарку
const DefaultAvatar = "/static/avatar-placeholder.png"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Никогда не отправляем пароль
	Avatar       string    `json:"avatar"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Регистрация
type RegisterRequest struct {
	Name     string `json:"name" validate:"required, min=1, max=255"`
	Email    string `json:"email" validate:"required, email"`
	Password string `json:"password" validate:"required, min=8, max=255"`
}

// Логин
type LoginRequest struct {
	Email    string `json:"email" validate:"required, email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// JWT Claims
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
}
