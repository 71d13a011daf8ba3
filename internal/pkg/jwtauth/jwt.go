package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the subject identity.
type RefreshClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Auth issues and validates HS256 token pairs.
type Auth struct {
	cfg Config
}

func New(cfg Config) *Auth {
	return &Auth{cfg: cfg}
}

// GeneratePair returns a fresh access/refresh token pair. Tokens are rotated
// on every login and refresh.
func (a *Auth) GeneratePair(userID uuid.UUID, email, name, role string) (access string, refresh string, err error) {
	now := time.Now()

	accessClaims := Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(a.cfg.AccessSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.RefreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(a.cfg.RefreshSecret))
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// ValidateAccess parses and verifies an access token.
func (a *Auth) ValidateAccess(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := a.parse(tokenString, claims, a.cfg.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateRefresh parses and verifies a refresh token.
func (a *Auth) ValidateRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := a.parse(tokenString, claims, a.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *Auth) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
