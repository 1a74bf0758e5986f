package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sportsconnect/api/internal/constants"
	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/pkg/logger"
	"github.com/sportsconnect/api/pkg/redis"
)

// OTPRecord is the stored pending verification. Only the bcrypt hash of
// the code is kept. ExpiresAt duplicates the key TTL so verification can
// reject a logically-expired record even before the store reaps it.
type OTPRecord struct {
	OTPHash   string    `json:"otp_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its expiry timestamp.
func (r *OTPRecord) Expired() bool {
	return time.Now().After(r.ExpiresAt)
}

// OTPRepository stores pending verification codes in Redis, one record
// per normalized email. SET with TTL replaces any previous pending code,
// which keeps the single-pending invariant by construction.
type OTPRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPRepository(client *redis.Client, ttl time.Duration) *OTPRepository {
	return &OTPRepository{client: client, ttl: ttl}
}

func key(email string) string {
	return constants.OTPKeyPrefix + email
}

// Save stores a new pending record for email, replacing any existing one.
func (r *OTPRepository) Save(ctx context.Context, email, otpHash string) error {
	record := OTPRecord{
		OTPHash:   otpHash,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := r.client.Set(ctx, key(email), payload, r.ttl); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// Get returns the pending record for email. A missing or store-expired key
// reports the expired-or-not-found domain error.
func (r *OTPRepository) Get(ctx context.Context, email string) (*OTPRecord, error) {
	payload, err := r.client.Get(ctx, key(email))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, apperrors.ErrOTPExpired
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	var record OTPRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		logger.GetLogger().Error("Corrupt OTP record",
			zap.String("email", email),
			zap.Error(err),
		)
		// Drop the unreadable record so the flow can restart cleanly.
		_ = r.client.Delete(ctx, key(email))
		return nil, apperrors.ErrOTPExpired
	}

	return &record, nil
}

// Delete consumes the pending record.
func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Delete(ctx, key(email)); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
