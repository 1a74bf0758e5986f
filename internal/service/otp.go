package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/sportsconnect/api/internal/errors"
	"github.com/sportsconnect/api/internal/validation"
	"github.com/sportsconnect/api/pkg/logger"
	"github.com/sportsconnect/api/pkg/mailer"
)

// devBypassOTP always verifies in development mode, consuming the
// pending record like a real match.
const devBypassOTP = "1234"

// OTPService owns the email verification flow: code issue, delivery and
// one-shot verification.
type OTPService struct {
	store       OTPStore
	mail        Mailer
	ttl         time.Duration
	development bool
}

func NewOTPService(store OTPStore, mail Mailer, ttl time.Duration, development bool) *OTPService {
	return &OTPService{
		store:       store,
		mail:        mail,
		ttl:         ttl,
		development: development,
	}
}

// generateCode draws a uniform 4-digit code in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}

// RequestOTP issues a fresh code for email, replacing any pending one,
// and emails it. Mail failure is logged but never fails the request. The
// returned devOTP is non-empty only in development mode.
func (s *OTPService) RequestOTP(ctx context.Context, email, fullName string) (devOTP string, err error) {
	email = validation.NormalizeEmail(email)

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.Save(ctx, email, string(hash)); err != nil {
		return "", err
	}

	msg, err := mailer.RenderOTP(fullName, email, code, int(s.ttl.Minutes()))
	if err != nil {
		logger.GetLogger().Error("Failed to render OTP email",
			zap.String("email", email),
			zap.Error(err),
		)
	} else if err := s.mail.Send(msg); err != nil {
		// The code is stored; a delivery failure must not block the flow,
		// especially in development where devOTP is echoed instead.
		logger.GetLogger().Warn("Failed to send OTP email",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	if s.development {
		return code, nil
	}
	return "", nil
}

// VerifyOTP checks the submitted code against the pending record and
// consumes the record on success. Missing and expired records are
// indistinguishable to the caller.
func (s *OTPService) VerifyOTP(ctx context.Context, email, otp string) error {
	email = validation.NormalizeEmail(email)

	record, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if record.Expired() {
		_ = s.store.Delete(ctx, email)
		return apperrors.ErrOTPExpired
	}

	if s.development && otp == devBypassOTP {
		return s.consume(ctx, email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(otp)); err != nil {
		return apperrors.ErrOTPInvalid
	}

	return s.consume(ctx, email)
}

func (s *OTPService) consume(ctx context.Context, email string) error {
	if err := s.store.Delete(ctx, email); err != nil {
		logger.GetLogger().Error("Failed to consume OTP record",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}
	return nil
}
