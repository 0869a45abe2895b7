package auth

import (
	"time"

	"citycare/internal/common"
)

// User model - citizens and administrators share one table
type User struct {
	common.BaseModel
	FirstName    string     `json:"first_name" gorm:"not null;size:100"`
	LastName     string     `json:"last_name" gorm:"not null;size:100"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Phone        string     `json:"phone,omitempty" gorm:"size:30"`
	Address      string     `json:"address,omitempty" gorm:"size:255"`
	District     string     `json:"district,omitempty" gorm:"size:100"`
	IsAdmin      bool       `json:"is_admin" gorm:"default:false"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastActive   *time.Time `json:"last_active,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName is the actor label recorded into complaint history
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Request/Response Models

// RegisterRequest represents the request to register a new citizen account
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	District  string `json:"district"`
}

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response for register and login
type AuthResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo represents user information for API responses
type UserInfo struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	District   string     `json:"district,omitempty"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedAt  time.Time  `json:"created_at"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

// UpdateProfileRequest carries optional profile fields; nil means unchanged
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	District  *string `json:"district"`
}

// ListUsersResponse represents the admin user listing
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
	Total int64      `json:"total"`
}
