package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"citycare/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a unique-constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const tokenTTL = 30 * time.Minute

// Service handles account and session business logic
type Service struct {
	db     *gorm.DB
	secret []byte
}

// NewService creates a new auth service
func NewService(db *gorm.DB) *Service {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "change-me-in-production"
	}
	return &Service{db: db, secret: []byte(secret)}
}

// Claims carried in the access token
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Register creates a new citizen account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email already registered: %w", common.ErrConstraintViolation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		District:     req.District,
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The pre-insert check races with concurrent registrations; the
		// unique index is the authority.
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("email already registered: %w", common.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(&user)
}

// Login verifies credentials and issues a token
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrNotFound)
	}

	now := time.Now().UTC()
	s.db.Model(&user).Update("last_active", now)
	user.LastActive = &now

	return s.issueToken(&user)
}

// GetUser returns a user by id
func (s *Service) GetUser(userID uuid.UUID) (*UserInfo, error) {
	var user User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	info := s.convertToUserInfo(&user)
	return &info, nil
}

// GetUserByEmail returns a user by email, used by admin create-on-behalf
func (s *Service) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of the patch
func (s *Service) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*UserInfo, error) {
	var user User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.District != nil {
		updates["district"] = *req.District
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	info := s.convertToUserInfo(&user)
	return &info, nil
}

// ListUsers returns all accounts, newest first (admin only)
func (s *Service) ListUsers() (*ListUsersResponse, error) {
	var users []User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, s.convertToUserInfo(&users[i]))
	}

	return &ListUsersResponse{Users: infos, Total: int64(len(infos))}, nil
}

// ParseToken validates a token string and returns its claims
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (s *Service) issueToken(user *User) (*AuthResponse, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:  user.ID.String(),
		Email:   user.Email,
		Name:    user.FullName(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(tokenTTL.Seconds()),
		User:      s.convertToUserInfo(user),
	}, nil
}

func (s *Service) convertToUserInfo(user *User) UserInfo {
	return UserInfo{
		ID:         user.ID.String(),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Phone:      user.Phone,
		Address:    user.Address,
		District:   user.District,
		IsAdmin:    user.IsAdmin,
		CreatedAt:  user.CreatedAt,
		LastActive: user.LastActive,
	}
}
