package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrLoginDisabled is returned when no administrator password hash is configured
	ErrLoginDisabled      = errors.New("password authentication not configured")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Admin checks the single club administrator login
type Admin struct {
	username     string
	passwordHash []byte
}

func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{
		username:     strings.ToLower(strings.TrimSpace(username)),
		passwordHash: []byte(passwordHash),
	}
}

// Authenticate verifies the credentials and returns the normalized username
func (a *Admin) Authenticate(username, password string) (string, error) {
	if len(a.passwordHash) == 0 {
		return "", ErrLoginDisabled
	}

	username = strings.ToLower(strings.TrimSpace(username))
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	// always run bcrypt so a wrong username costs as much as a wrong password
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}
	return a.username, nil
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
