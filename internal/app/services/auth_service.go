// Package services implements the business rules behind the HTTP surface.
// Services accept narrow store interfaces so they can be exercised without
// a running database.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
	"github.com/emrekb/coursedeck/internal/pkg/auth"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// InstructorStore is the instructor-profile persistence surface.
type InstructorStore interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error)
}

// TokenStore is the refresh token persistence surface.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and the refresh token lifecycle
type AuthService struct {
	userStore       UserStore
	instructorStore InstructorStore
	tokenStore      TokenStore
	jwtService      *auth.JWTService
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	instructorStore InstructorStore,
	tokenStore TokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:       userStore,
		instructorStore: instructorStore,
		tokenStore:      tokenStore,
		jwtService:      jwtService,
		logger:          logger,
	}
}

// Register creates a new user account. When the request asks for an
// instructor account, an instructor profile is created alongside the user;
// the profile's existence is what grants instructor rights on later
// requests.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userStore.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	userID, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	var instructorID *int64
	if req.UserType == dto.UserTypeInstructor {
		instructor := &models.Instructor{
			UserID: userID,
			Bio:    req.Bio,
		}
		if err := s.instructorStore.Create(ctx, instructor); err != nil {
			return nil, fmt.Errorf("instructor profile creation error: %w", err)
		}
		instructorID = &instructor.ID
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Str("userType", string(req.UserType)).
		Msg("User registered")

	return &dto.AuthResponse{
		Token: *token,
		User:  newUserResponse(user, instructorID),
	}, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *token,
		User:  newUserResponse(user, s.lookupInstructorID(ctx, user.ID)),
	}, nil
}

// RefreshToken rotates a refresh token: the presented token is validated,
// revoked, and a fresh pair is issued. A reused (already revoked) token is
// rejected.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving token owner: %w", err)
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes the presented refresh token. Revoking an unknown token is
// reported as not found.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.RevokeToken(ctx, refreshToken)
}

// LogoutAll revokes every active refresh token of a user
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.tokenStore.RevokeAllUserTokens(ctx, userID)
}

// lookupInstructorID resolves a user's instructor profile ID, if any. Lookup
// failures degrade to a plain-student response rather than failing the
// whole login.
func (s *AuthService) lookupInstructorID(ctx context.Context, userID int64) *int64 {
	instructor, err := s.instructorStore.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInstructorNotFound) {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not resolve instructor profile")
		}
		return nil
	}
	return &instructor.ID
}

// generateTokenResponse creates a token pair and persists the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

func newUserResponse(user *models.User, instructorID *int64) dto.UserResponse {
	userType := dto.UserTypeStudent
	if instructorID != nil {
		userType = dto.UserTypeInstructor
	}
	return dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		UserType:     userType,
		InstructorID: instructorID,
	}
}
