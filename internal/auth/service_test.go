package auth

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testUser() *User {
	u := &User{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		IsAdmin:   true,
	}
	u.ID = uuid.New()
	return u
}

// TestTokenRoundTrip checks that an issued token parses back to the same identity.
func TestTokenRoundTrip(t *testing.T) {
	// Arrange
	s := NewService(nil)
	user := testUser()

	// Act
	resp, err := s.issueToken(user)
	require.NoError(t, err)
	claims, err := s.ParseToken(resp.Token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, user.Email, claims.Subject)
}

// TestTokenExpiry checks that the token carries the 30 minute TTL.
func TestTokenExpiry(t *testing.T) {
	s := NewService(nil)

	resp, err := s.issueToken(testUser())
	require.NoError(t, err)
	assert.Equal(t, int(tokenTTL.Seconds()), resp.ExpiresIn)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := s.ParseToken(resp.Token)
	require.NoError(t, err)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 29*time.Minute)
	assert.LessOrEqual(t, remaining, 30*time.Minute)
}

// TestParseTokenRejectsGarbage checks that malformed tokens fail.
func TestParseTokenRejectsGarbage(t *testing.T) {
	s := NewService(nil)

	_, err := s.ParseToken("not-a-token")
	assert.Error(t, err)
}

// TestParseTokenRejectsForeignSecret checks that tokens signed elsewhere fail.
func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer := &Service{secret: []byte("issuer-secret")}
	verifier := &Service{secret: []byte("verifier-secret")}

	resp, err := issuer.issueToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseToken(resp.Token)
	assert.Error(t, err)
}

// TestFullName checks the actor label format recorded into history.
func TestFullName(t *testing.T) {
	u := testUser()
	assert.Equal(t, "Jane Doe", u.FullName())
}

// TestIsDuplicateKey checks unique-violation detection for the registration
// race where two requests pass the email check and one insert loses.
func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isDuplicateKey(fmt.Errorf("failed to create user: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.False(t, isDuplicateKey(&pgconn.PgError{Code: "23503"}))
}
