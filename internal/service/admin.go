package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/dto"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/pkg/logger"
)

// Export formats.
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

// Export is a rendered user export ready to stream.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// AdminService backs the operator dashboard. The admin identity is a
// static credential pair from configuration, a trust domain fully
// separate from user accounts.
type AdminService struct {
	users    UserStore
	tokens   *TokenService
	username string
	password string
}

func NewAdminService(users UserStore, tokens *TokenService, username, password string) *AdminService {
	return &AdminService{
		users:    users,
		tokens:   tokens,
		username: username,
		password: password,
	}
}

// Login checks the submitted credentials against the configured pair and
// issues an admin-scope token.
func (s *AdminService) Login(req *dto.AdminLoginRequest) (string, error) {
	if s.password == "" {
		// Unset password disables the dashboard entirely.
		return "", apperrors.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAdminToken()
	if err != nil {
		return "", err
	}

	logger.GetLogger().Info("Admin logged in",
		zap.String("username", s.username),
	)
	return token, nil
}

// Stats returns the dashboard aggregates.
func (s *AdminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalUsers:       stats.Total,
		ActiveUsers:      stats.Active,
		InactiveUsers:    stats.Total - stats.Active,
		OnlineUsers:      stats.Online,
		NewUsersToday:    stats.NewToday,
		NewUsersThisWeek: stats.NewInWeek,
	}, nil
}

// ListUsers returns one page of users with pagination metadata.
func (s *AdminService) ListUsers(ctx context.Context, params constants.ListParams) (*dto.ListUsersResponse, error) {
	users, total, err := s.users.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}

	return &dto.ListUsersResponse{
		Users: dto.NewUserResponseList(users),
		Pagination: dto.Pagination{
			Total: total,
			Page:  params.Page,
			Limit: params.Limit,
			Pages: pages,
		},
	}, nil
}

// GetUser returns one user by id.
func (s *AdminService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateUser merges the provided fields, including the activation and
// admin-flag toggles, into the record.
func (s *AdminService) UpdateUser(ctx context.Context, id uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyAdminPatch(user, req)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Admin updated user",
		zap.Uint("user_id", id),
	)
	return dto.NewUserResponse(user), nil
}

func applyAdminPatch(user *model.User, req *dto.AdminUpdateUserRequest) {
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Location != nil {
		user.Location = datatypes.NewJSONType(*req.Location)
	}
	if req.Sports != nil {
		user.Sports = datatypes.NewJSONSlice(*req.Sports)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
}

// DeleteUser removes the record permanently.
func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.GetLogger().Info("Admin deleted user",
		zap.Uint("user_id", id),
	)
	return nil
}

// ExportUsers renders the full user list in the requested format, always
// without password material.
func (s *AdminService) ExportUsers(ctx context.Context, format string) (*Export, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExportFormatCSV:
		return &Export{
			Data:        renderUsersCSV(users),
			ContentType: constants.ContentTypeCSV,
			Filename:    "users.csv",
		}, nil
	case "", ExportFormatJSON:
		data, err := json.Marshal(dto.NewUserResponseList(users))
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		return &Export{
			Data:        data,
			ContentType: constants.ContentTypeJSON,
			Filename:    "users.json",
		}, nil
	default:
		return nil, apperrors.NewDomainError("INVALID_INPUT", "Unsupported export format")
	}
}

// csvHeader is the fixed export column set.
var csvHeader = []string{"ID", "Full Name", "Username", "Email", "Phone", "Active", "Joined", "Last Login"}

// renderUsersCSV writes the export with every cell quoted, which is the
// contract dashboard importers rely on. encoding/csv quotes minimally,
// so the rows are assembled by hand.
func renderUsersCSV(users []model.User) []byte {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)

	for i := range users {
		u := &users[i]
		writeCSVRow(&b, []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.FullName,
			u.Username,
			u.Email,
			u.Phone,
			strconv.FormatBool(u.IsActive),
			u.CreatedAt.Format(time.RFC3339),
			u.LastLogin.Format(time.RFC3339),
		})
	}

	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
