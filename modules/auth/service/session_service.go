package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"booker-api/core/cache"
	"booker-api/core/config"
	"booker-api/core/errors"
	"booker-api/core/logger"
	"booker-api/core/utils"
	"booker-api/modules/auth/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	blacklistPrefix = "auth:blacklist:"
	statePrefix     = "auth:oauth_state:"
	stateTTL        = 10 * time.Minute
)

var googleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/calendar.readonly",
}

// SessionService is the session boundary: it only answers whether a token is a live session
// and builds the provider login URL offered to logged-out viewers.
type SessionService interface {
	ValidateToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
	Revoke(ctx context.Context, claims *utils.TokenClaims) *errors.AppError
	ContinueWithProviderURL(ctx context.Context, returnTo string) (*dto.ContinueURLResponse, *errors.AppError)
	ResolveReturnTo(ctx context.Context, state string) (string, *errors.AppError)
}

type sessionService struct {
	cache cache.Cache
}

func NewSessionService(cache cache.Cache) SessionService {
	return &sessionService{cache: cache}
}

func (s *sessionService) ValidateToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError) {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	_, blacklisted, err := s.cache.Get(ctx, blacklistPrefix+claims.ID)
	if err != nil {
		logger.Error("SessionService:ValidateToken:IsTokenBlacklisted:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil)
	}
	return claims, nil
}

func (s *sessionService) Revoke(ctx context.Context, claims *utils.TokenClaims) *errors.AppError {
	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, blacklistPrefix+claims.ID, []byte("1"), ttl); err != nil {
		logger.Error("SessionService:Revoke:AddToTokenBlacklist:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

// ContinueWithProviderURL returns the Google login URL. returnTo must be a relative booker path;
// it is kept server side under the OAuth state.
func (s *sessionService) ContinueWithProviderURL(ctx context.Context, returnTo string) (*dto.ContinueURLResponse, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		logger.Error("SessionService:ContinueWithProviderURL:ConfigNotInitialized")
		return nil, errors.NewAppError(errors.ErrInternalServer, "Server configuration error", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.RedirectURI == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google login is not configured", nil)
	}

	if !isRelativePath(returnTo) {
		returnTo = "/"
	}

	state := utils.GenerateDeviceID()
	if err := s.cache.Set(ctx, statePrefix+state, []byte(returnTo), stateTTL); err != nil {
		logger.Error("SessionService:ContinueWithProviderURL:SaveState:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save oauth state", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}

	return &dto.ContinueURLResponse{
		URL:   oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State: state,
	}, nil
}

// ResolveReturnTo consumes state and returns the booker path saved with it.
func (s *sessionService) ResolveReturnTo(ctx context.Context, state string) (string, *errors.AppError) {
	value, ok, err := s.cache.Get(ctx, statePrefix+state)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to read oauth state", err)
	}
	if !ok {
		return "", errors.NewAppError(errors.ErrNotFound, "oauth state not found or expired", nil)
	}
	// a state is good for one return only
	if err := s.cache.Delete(ctx, statePrefix+state); err != nil {
		logger.Warn("SessionService:ResolveReturnTo:DeleteState:Error", "error", err)
	}
	return string(value), nil
}

func isRelativePath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
