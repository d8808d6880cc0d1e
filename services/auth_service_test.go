package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ibrahimbiplob75/taskhub/testutils"
)

func TestHashAndComparePasswords(t *testing.T) {
	authService := NewAuthService("test-secret", 1)

	hash, err := authService.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, authService.ComparePasswords(hash, "s3cret"))
	assert.Error(t, authService.ComparePasswords(hash, "wrong"))
}

func TestLogin_Success(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	authService := NewAuthService("test-secret", 1)
	hash, err := authService.HashPassword("s3cret")
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("user@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(7, "Test User", "user@example.com", hash))

	tokenString, user, err := authService.Login(db, "user@example.com", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Equal(t, uint(7), user.ID)

	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	authService := NewAuthService("test-secret", 1)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := authService.Login(db, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	authService := NewAuthService("test-secret", 1)
	hash, err := authService.HashPassword("s3cret")
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("user@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(7, "Test User", "user@example.com", hash))

	_, _, err = authService.Login(db, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateToken_TamperedSecret(t *testing.T) {
	issuer := NewAuthService("secret-a", 1)
	verifier := NewAuthService("secret-b", 1)

	db, mock, close := testutils.SetupMockDB()
	defer close()

	hash, err := issuer.HashPassword("s3cret")
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WithArgs("user@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(7, "Test User", "user@example.com", hash))

	tokenString, _, err := issuer.Login(db, "user@example.com", "s3cret")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString)
	assert.Error(t, err)
}
