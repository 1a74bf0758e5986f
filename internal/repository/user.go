package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportsconnect/api/internal/constants"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/pkg/logger"
)

// onlineWindow bounds the "online" derivation: last login within this
// window counts as online.
const onlineWindow = 15 * time.Minute

// sortColumns whitelists admin sort fields. Anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"fullName":  "full_name",
	"username":  "username",
	"email":     "email",
	"lastLogin": "last_login",
}

// Stats is the aggregate block behind the admin dashboard.
type Stats struct {
	Total     int64
	Active    int64
	Online    int64
	NewToday  int64
	NewInWeek int64
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. A unique-index violation on username or email
// surfaces as the duplicate-user domain error; the pre-checks in the
// service are advisory only, this is the authoritative one.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserExists
		}
		logger.GetLogger().Error("Failed to create user",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.GetLogger().Error("Failed to get user by id",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

// GetByIdentifier looks a user up by username or email. The identifier is
// expected pre-normalized (trimmed, lowercased).
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return r.getBy(ctx, "username = ? OR email = ?", identifier, identifier)
}

func (r *UserRepository) getBy(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.GetLogger().Error("Failed to query user",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return &user, nil
}

// List returns one page of users plus the total matching count.
func (r *UserRepository) List(ctx context.Context, params constants.ListParams) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	query = applyFilters(query, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.GetLogger().Error("Failed to count users", zap.Error(err))
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortOrder == constants.OrderAsc {
		direction = "ASC"
	}

	var users []model.User
	err := query.
		Order(column + " " + direction).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&users).Error
	if err != nil {
		logger.GetLogger().Error("Failed to list users",
			zap.Int("page", params.Page),
			zap.Int("limit", params.Limit),
			zap.Error(err),
		)
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return users, total, nil
}

func applyFilters(query *gorm.DB, params constants.ListParams) *gorm.DB {
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"full_name ILIKE ? OR username ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	switch params.Status {
	case constants.StatusActive:
		query = query.Where("is_active = ?", true)
	case constants.StatusInactive:
		query = query.Where("is_active = ?", false)
	case constants.StatusOnline:
		query = query.Where("last_login >= ?", time.Now().Add(-onlineWindow))
	}

	return query
}

// ListAll returns every user ordered by creation, for the export endpoint.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		logger.GetLogger().Error("Failed to list all users", zap.Error(err))
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return users, nil
}

// Update persists the already-mutated user record.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserExists
		}
		logger.GetLogger().Error("Failed to update user",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// UpdateLastLogin touches the login timestamp without rewriting the record.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
	if err != nil {
		logger.GetLogger().Error("Failed to update last login",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// Delete removes the user row. Missing ids report not-found so the admin
// API can distinguish them from validation errors.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to delete user",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return apperrors.WrapError(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Stats computes the dashboard aggregates in one pass per counter.
func (r *UserRepository) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now()
	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{scope: func(q *gorm.DB) *gorm.DB { return q }},
		{scope: func(q *gorm.DB) *gorm.DB { return q.Where("is_active = ?", true) }},
		{scope: func(q *gorm.DB) *gorm.DB { return q.Where("last_login >= ?", now.Add(-onlineWindow)) }},
		{scope: func(q *gorm.DB) *gorm.DB { return q.Where("created_at >= ?", now.Add(-24*time.Hour)) }},
		{scope: func(q *gorm.DB) *gorm.DB { return q.Where("created_at >= ?", now.Add(-7*24*time.Hour)) }},
	}

	var stats Stats
	counts[0].dest = &stats.Total
	counts[1].dest = &stats.Active
	counts[2].dest = &stats.Online
	counts[3].dest = &stats.NewToday
	counts[4].dest = &stats.NewInWeek

	for _, c := range counts {
		query := c.scope(r.db.WithContext(ctx).Model(&model.User{}))
		if err := query.Count(c.dest).Error; err != nil {
			logger.GetLogger().Error("Failed to compute user stats", zap.Error(err))
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return &stats, nil
}
