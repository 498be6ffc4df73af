package security

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AppToken is a signed token plus the metadata callers surface to the
// dashboard client.
type AppToken struct {
	Token          string
	TokenType      string
	ExpirationTime time.Time
}

type IJWTService interface {
	GenerateJWTToken(userID int, tokenType string, role string) (*AppToken, error)
	GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error)
}

// JWTService issues and verifies HS256 access and refresh tokens. The
// secrets and lifetimes come from environment variables.
type JWTService struct {
	accessSecret  string
	refreshSecret string
	accessMinutes int
	refreshHours  int
}

func NewJWTService() IJWTService {
	return &JWTService{
		accessSecret:  os.Getenv("JWT_ACCESS_SECRET_KEY"),
		refreshSecret: os.Getenv("JWT_REFRESH_SECRET_KEY"),
		accessMinutes: envInt("JWT_ACCESS_TIME_MINUTE", 30),
		refreshHours:  envInt("JWT_REFRESH_TIME_HOUR", 24),
	}
}

func envInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func (s *JWTService) secretAndDuration(tokenType string) (string, time.Duration, error) {
	switch tokenType {
	case "access":
		if s.accessSecret == "" {
			return "", 0, errors.New("JWT_ACCESS_SECRET_KEY not configured")
		}
		return s.accessSecret, time.Duration(s.accessMinutes) * time.Minute, nil
	case "refresh":
		if s.refreshSecret == "" {
			return "", 0, errors.New("JWT_REFRESH_SECRET_KEY not configured")
		}
		return s.refreshSecret, time.Duration(s.refreshHours) * time.Hour, nil
	default:
		return "", 0, fmt.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *JWTService) GenerateJWTToken(userID int, tokenType string, role string) (*AppToken, error) {
	secret, duration, err := s.secretAndDuration(tokenType)
	if err != nil {
		return nil, err
	}

	expirationTime := time.Now().Add(duration)
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"type": tokenType,
		"exp":  expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &AppToken{
		Token:          signed,
		TokenType:      tokenType,
		ExpirationTime: expirationTime,
	}, nil
}

func (s *JWTService) GetClaimsAndVerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error) {
	secret, _, err := s.secretAndDuration(tokenType)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claimType, ok := claims["type"].(string); !ok || claimType != tokenType {
		return nil, errors.New("token type mismatch")
	}

	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < jwt.TimeFunc().Unix() {
		return nil, errors.New("token expired")
	}

	return claims, nil
}
