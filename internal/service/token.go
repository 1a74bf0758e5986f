package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sportsconnect/api/internal/constants"
	apperrors "github.com/sportsconnect/api/internal/errors"
)

// TokenClaims is the validated content of a session token.
type TokenClaims struct {
	Subject string
	Scope   string
}

// IsAdmin reports whether the token belongs to the static-credential
// operator. Admin tokens carry the fixed sentinel subject and never
// reference a user record.
func (c *TokenClaims) IsAdmin() bool {
	return c.Scope == constants.ScopeAdmin && c.Subject == constants.AdminSubject
}

// UserID parses the numeric subject of a user-scope token.
func (c *TokenClaims) UserID() (uint, error) {
	if c.Scope != constants.ScopeUser {
		return 0, apperrors.ErrInvalidToken
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	return uint(id), nil
}

// TokenService issues and validates HS256 session tokens. Tokens are
// self-contained; there is no server-side revocation.
type TokenService struct {
	secretKey  string
	expiration time.Duration
}

func NewTokenService(secretKey string, expiration time.Duration) *TokenService {
	return &TokenService{
		secretKey:  secretKey,
		expiration: expiration,
	}
}

// GenerateUserToken issues a user-scope token for the given user id.
func (s *TokenService) GenerateUserToken(userID uint) (string, error) {
	return s.sign(strconv.FormatUint(uint64(userID), 10), constants.ScopeUser)
}

// GenerateAdminToken issues an admin-scope token with the sentinel subject.
func (s *TokenService) GenerateAdminToken() (string, error) {
	return s.sign(constants.AdminSubject, constants.ScopeAdmin)
}

func (s *TokenService) sign(subject, scope string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scope,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token string. Any parse, signature
// or expiry failure maps to the invalid-token domain error.
func (s *TokenService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	subject, _ := mapClaims["sub"].(string)
	scope, _ := mapClaims["scope"].(string)
	if subject == "" || scope == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return &TokenClaims{Subject: subject, Scope: scope}, nil
}
