package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/shared"
	"github.com/studioerp/backend/internal/infrastructure/auth"
)

// AuthService handles login and logout
type AuthService struct {
	userRepo  identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt, blacklist: blacklist, logger: logger}
}

// Login authenticates the credentials and issues a token. Failed lookups and
// wrong passwords return the same error so attackers cannot probe for
// registered emails.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalidCredentials := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, invalidCredentials
	}
	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been deactivated")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	issued, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresAt: issued.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout revokes the token by blacklisting its ID for the remainder of its
// lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.RemainingTTL(time.Now())
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Add(ctx, claims.ID, ttl)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (*UserResponse, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
