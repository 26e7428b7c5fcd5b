package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/edusync/statesync/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenIsExpired is returned by ParseAuthToken when the token's "exp"
// claim lies in the past.
var ErrTokenIsExpired = errors.New("token is expired")

// authClaims are the claims the external auth service embeds in every
// access token. The sync engine treats them as opaque identity values.
type authClaims struct {
	jwt.RegisteredClaims
	TenantID string   `json:"tid"`
	Roles    []string `json:"roles,omitempty"`
}

// ParseAuthToken validates the given JWT string and extracts the identity
// claims into a [models.AuthContext].
//
// Validation includes:
//   - signature verification with HMAC-SHA256 and the provided sign key;
//   - issuer (iss) claim check against the provided issuer;
//   - expiration (exp) claim check;
//   - subject (sub) and tenant (tid) claim presence.
//
// DeviceID is transport-level information (a header, not a claim) and is
// left empty; the caller fills it in.
func ParseAuthToken(tokenString, signKey, issuer string) (models.AuthContext, error) {
	claims := &authClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.AuthContext{}, ErrTokenIsExpired
		}
		return models.AuthContext{}, fmt.Errorf("error parsing JWT token: %w", err)
	}

	if !token.Valid {
		return models.AuthContext{}, errors.New("invalid JWT token")
	}

	if claims.Subject == "" {
		return models.AuthContext{}, errors.New("token has no subject claim")
	}
	if claims.TenantID == "" {
		return models.AuthContext{}, errors.New("token has no tenant claim")
	}

	return models.AuthContext{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Roles:    claims.Roles,
	}, nil
}

// GenerateAuthToken creates a signed HMAC-SHA256 token carrying the given
// identity. Production tokens are issued by the external auth service;
// this helper exists for integration tests and local development.
func GenerateAuthToken(issuer, userID, tenantID string, roles []string, duration time.Duration, signKey string) (string, error) {
	if issuer == "" || duration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: tenantID,
		Roles:    roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}
