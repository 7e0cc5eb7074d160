package utils

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"booker-api/core/config"
	"booker-api/core/constants"
	"booker-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

func tokenSettings() (secret []byte, issuer string, ttl time.Duration, err error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, "", 0, fmt.Errorf("jwt secret is not configured")
	}
	ttl = cfg.JWT.AccessTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return []byte(cfg.JWT.Secret), cfg.JWT.Issuer, ttl, nil
}

// GenerateToken issues a signed access token for userID.
func GenerateToken(userID int64, email string) (string, error) {
	secret, issuer, ttl, err := tokenSettings()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Scope:  constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateAndParseToken(token string) (*TokenClaims, error) {
	secret, _, _, err := tokenSettings()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "token validation is not configured", err)
	}

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !parsed.Valid || claims.Scope != constants.ScopeTokenAccess {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}
	return claims, nil
}

// GetTokenFromHeader strips the Bearer prefix. Empty means no token.
func GetTokenFromHeader(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

type tokenDataKey struct{}

func WithTokenData(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, tokenDataKey{}, claims)
}

// TokenDataFromContext returns the claims the auth middleware attached, if any.
func TokenDataFromContext(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(tokenDataKey{}).(*TokenClaims)
	return claims, ok && claims != nil
}
