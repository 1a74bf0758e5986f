package service

import (
	"context"

	"gorm.io/datatypes"

	"github.com/sportsconnect/api/internal/dto"
	"github.com/sportsconnect/api/internal/model"
)

// UserService owns profile reads and owner-side updates.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the caller's own sanitized record.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile merges only the provided fields into the caller's record.
// Identity fields (username, email, password) are not editable here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, req)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

func applyProfilePatch(user *model.User, req *dto.UpdateProfileRequest) {
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
}

// GetPublicProfile returns the anonymous view of any user: no email,
// no phone.
func (s *UserService) GetPublicProfile(ctx context.Context, userID uint) (*dto.PublicUserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewPublicUserResponse(user), nil
}
