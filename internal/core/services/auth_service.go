package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/platform/config"
	"github.com/usawacapital/loan_origination_app/internal/utils"
)

// tokenService implements TokenSvcFacade for JWT access tokens and persisted
// refresh tokens. Refresh tokens are stored as SHA-256 hashes; the raw value
// only ever travels to the client.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates, persists and returns a new refresh token.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	now := time.Now()
	expiryTime := now.Add(s.cfg.RefreshTokenExpiryDuration)
	token := domain.RefreshToken{
		TokenHash: utils.HashRefreshToken(rawRefreshToken),
		UserID:    user.UserID,
		ExpiresAt: expiryTime,
		CreatedAt: now,
	}
	if err := s.userRepo.SaveRefreshToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to persist refresh token")
		return "", time.Time{}, err
	}
	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against the
// stored hash and returns the owning user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error) {
	stored, err := s.userRepo.FindRefreshToken(ctx, utils.HashRefreshToken(refreshTokenString))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid refresh token")
		}
		s.LogError(ctx, err, "Failed to look up refresh token")
		return nil, err
	}
	if stored.RevokedAt != nil {
		return nil, apperrors.NewUnauthorizedError("refresh token has been revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.NewUnauthorizedError("refresh token has expired")
	}

	user, err := s.userRepo.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid refresh token")
		}
		return nil, err
	}
	return user, nil
}

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
