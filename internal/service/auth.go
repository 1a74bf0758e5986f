package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/sportsconnect/api/internal/dto"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/internal/validation"
	"github.com/sportsconnect/api/pkg/logger"
	"github.com/sportsconnect/api/pkg/mailer"
)

// AuthService owns account creation and session establishment.
type AuthService struct {
	users  UserStore
	tokens *TokenService
	mail   Mailer
}

func NewAuthService(users UserStore, tokens *TokenService, mail Mailer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mail:   mail,
	}
}

// CheckUsername validates availability of a normalized username.
// The returned message is the API response body.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (string, error) {
	username = validation.NormalizeUsername(username)
	if len(username) < validation.MinUsernameLength {
		return "", apperrors.NewDomainError("INVALID_INPUT", "Username must be at least 3 characters")
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return "", apperrors.ErrUsernameTaken
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "Username is available", nil
	default:
		return "", err
	}
}

// Signup creates the account and opens a session. Duplicate identity is
// pre-checked for a friendly fast path, but the store's unique indexes
// are the real guard: a concurrent insert still surfaces as ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (string, *dto.UserResponse, error) {
	username := validation.NormalizeUsername(req.Username)
	email := validation.NormalizeEmail(req.Email)

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", nil, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return "", nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", nil, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		FullName:  req.FullName,
		Username:  username,
		Email:     email,
		Phone:     req.Phone,
		Password:  string(hash),
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		IsActive:  true,
		LastLogin: time.Now(),
	}
	if user.Avatar == "" {
		user.Avatar = "default"
	}
	if req.Location != nil {
		user.Location = datatypes.NewJSONType(*req.Location)
	}
	if req.Sports != nil {
		user.Sports = datatypes.NewJSONSlice(req.Sports)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateUserToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	if msg, err := mailer.RenderWelcome(user.FullName, user.Email); err != nil {
		logger.GetLogger().Error("Failed to render welcome email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	} else {
		s.mail.Enqueue(msg)
	}

	logger.GetLogger().Info("User signed up",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return token, dto.NewUserResponse(user), nil
}

// Login authenticates by username or email. Unknown identifier and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.UserResponse, error) {
	identifier := validation.NormalizeUsername(req.Identifier)

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, apperrors.ErrAccountInactive
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Non-fatal: the login still succeeds, the online indicator lags.
		logger.GetLogger().Warn("Failed to touch last login",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
	} else {
		user.LastLogin = now
	}

	token, err := s.tokens.GenerateUserToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	logger.GetLogger().Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return token, dto.NewUserResponse(user), nil
}

// CurrentUser resolves the bearer's own record.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}
