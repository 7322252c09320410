package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const bearerScheme = "Bearer"

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT Token")
	ErrEmptySubject       = errors.New("empty subject in token")

	// ErrMalformedAuthorization means the header is not "Bearer <token>".
	ErrMalformedAuthorization = errors.New("invalid `Authorization` header")
)

// GenerateJWTToken signs an HS256 token for userID that expires after
// tokenDuration. Every argument is required.
func GenerateJWTToken(issuer, userID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{SignedString: signed, UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ValidateAndParseJWTToken checks the signature, issuer and expiry of
// tokenString. Library errors are wrapped so callers can match
// jwt.ErrTokenExpired.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	return models.Token{SignedString: tokenString, UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ParseBearerToken returns the token of a "Bearer <token>" header value. The
// scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", ErrMalformedAuthorization
	}
	return parts[1], nil
}

// ParseUserIDFromJWT returns the subject of tokenString without verifying the
// signature. Use it for display only, never for authorization.
func ParseUserIDFromJWT(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrEmptySubject
	}
	return claims.Subject, nil
}
