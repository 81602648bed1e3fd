package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	profiles   identity.ProfileRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	hasher     auth.PasswordHasher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	profiles identity.ProfileRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	hasher auth.PasswordHasher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profiles:   profiles,
		jwtService: jwtService,
		blacklist:  blacklist,
		hasher:     hasher,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	profile, err := s.profiles.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !profile.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !s.hasher.Compare(profile.PasswordHash, input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:    profile.ID,
		Username:  profile.Username,
		Role:      string(profile.Role),
		ManagerID: profile.ManagerID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	info := ToProfileInfo(profile)
	if profile.ManagerID != nil {
		if mgr, err := s.profiles.FindByID(ctx, *profile.ManagerID); err == nil {
			info.ManagerName = mgr.DisplayName
		}
	}

	s.logger.Info("User logged in",
		zap.String("username", profile.Username),
		zap.String("user_id", profile.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  info,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. Role and
// manager are re-read from the profile so org changes take effect here.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	if !profile.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(refreshToken, string(profile.Role), profile.ManagerID)
	if err != nil {
		switch err {
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	return &RefreshResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout blacklists the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentProfile returns the profile behind the authenticated viewer
func (s *AuthService) CurrentProfile(ctx context.Context, viewer identity.Viewer) (*ProfileInfo, error) {
	profile, err := s.profiles.FindByID(ctx, viewer.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	info := ToProfileInfo(profile)
	if profile.ManagerID != nil {
		if mgr, err := s.profiles.FindByID(ctx, *profile.ManagerID); err == nil {
			info.ManagerName = mgr.DisplayName
		}
	}
	return &info, nil
}
