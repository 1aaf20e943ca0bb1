package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"UserAuthAPI/internal/model"
)

// OtpPurpose selects which OTP field pair on the user a code belongs to.
// The two workflows are independent: a verify code never validates a reset
// and vice versa.
type OtpPurpose string

const (
	PurposeVerify OtpPurpose = "verify"
	PurposeReset  OtpPurpose = "reset"
)

const (
	VerifyOtpTTL = 10 * time.Minute
	ResetOtpTTL  = 15 * time.Minute
)

var (
	ErrInvalidOtp = errors.New("invalid OTP")
	ErrOtpExpired = errors.New("OTP is expired")
)

// OtpManager generates and validates 6-digit one-time codes stored on the
// user record. Regeneration overwrites any prior code for the same purpose.
type OtpManager struct {
	Users UserStore
}

func NewOtpManager(u UserStore) *OtpManager {
	return &OtpManager{Users: u}
}

func (m *OtpManager) window(purpose OtpPurpose) time.Duration {
	if purpose == PurposeReset {
		return ResetOtpTTL
	}
	return VerifyOtpTTL
}

// newCode draws a uniformly random integer in [100000, 999999].
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Generate stores a fresh code and its expiry in the purpose's fields,
// persists the user and returns the code for dispatch.
func (m *OtpManager) Generate(ctx context.Context, u *model.User, purpose OtpPurpose) (string, error) {
	code, err := newCode()
	if err != nil {
		return "", err
	}
	expireAt := time.Now().Add(m.window(purpose)).UnixMilli()

	switch purpose {
	case PurposeReset:
		u.ResetOtp = code
		u.ResetOtpExpireAt = expireAt
	default:
		u.VerifyOtp = code
		u.VerifyOtpExpireAt = expireAt
	}

	if err := m.Users.Save(ctx, u); err != nil {
		return "", err
	}
	return code, nil
}

// Validate checks a submitted code against the stored one. The code check
// runs before the expiry check; a stored expiry instant itself counts as
// expired.
func (m *OtpManager) Validate(u *model.User, purpose OtpPurpose, submitted string) error {
	stored, expireAt := u.VerifyOtp, u.VerifyOtpExpireAt
	if purpose == PurposeReset {
		stored, expireAt = u.ResetOtp, u.ResetOtpExpireAt
	}

	if stored == "" || stored != submitted {
		return ErrInvalidOtp
	}
	if time.Now().UnixMilli() >= expireAt {
		return ErrOtpExpired
	}
	return nil
}

// Consume finalizes a successfully validated code: the verify purpose marks
// the account verified, both purposes clear their fields, and the user is
// persisted. For resets the caller swaps the password hash before calling.
func (m *OtpManager) Consume(ctx context.Context, u *model.User, purpose OtpPurpose) error {
	switch purpose {
	case PurposeReset:
		u.ResetOtp = ""
		u.ResetOtpExpireAt = 0
	default:
		u.IsAccountVerified = true
		u.VerifyOtp = ""
		u.VerifyOtpExpireAt = 0
	}
	return m.Users.Save(ctx, u)
}
