package service

import (
	"context"
	"time"

	"github.com/sportsconnect/api/internal/constants"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/internal/repository"
	"github.com/sportsconnect/api/pkg/mailer"
)

// UserStore is the durable user storage the services depend on. The GORM
// repository is the production implementation; tests use in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	List(ctx context.Context, params constants.ListParams) ([]model.User, int64, error)
	ListAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*repository.Stats, error)
}

// OTPStore holds pending verification codes.
type OTPStore interface {
	Save(ctx context.Context, email, otpHash string) error
	Get(ctx context.Context, email string) (*repository.OTPRecord, error)
	Delete(ctx context.Context, email string) error
}

// Mailer sends rendered messages. Send is synchronous, Enqueue is
// fire-and-forget.
type Mailer interface {
	Send(msg mailer.Message) error
	Enqueue(msg mailer.Message)
}
