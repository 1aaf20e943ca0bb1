package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[1-9]\d{5}$`)

func setupOtp(t *testing.T) (*memStore, *OtpManager, string) {
	t.Helper()
	store := newMemStore()
	u, err := store.Create(context.Background(), "Ann", "ann@x.com", "hash")
	require.NoError(t, err)
	return store, NewOtpManager(store), u.ID
}

func TestGenerate_StoresCodeAndExpiry(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, err := store.FindByID(ctx, id)
	require.NoError(t, err)

	before := time.Now()
	code, err := otp.Generate(ctx, user, PurposeVerify)
	require.NoError(t, err)
	require.Regexp(t, sixDigits, code)

	saved, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, code, saved.VerifyOtp)
	assert.GreaterOrEqual(t, saved.VerifyOtpExpireAt, before.Add(VerifyOtpTTL).UnixMilli())
	assert.LessOrEqual(t, saved.VerifyOtpExpireAt, time.Now().Add(VerifyOtpTTL).UnixMilli())

	// reset fields untouched
	assert.Empty(t, saved.ResetOtp)
	assert.Zero(t, saved.ResetOtpExpireAt)
}

func TestGenerate_OverwritesPriorCode(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)
	first, err := otp.Generate(ctx, user, PurposeReset)
	require.NoError(t, err)

	user, _ = store.FindByID(ctx, id)
	second, err := otp.Generate(ctx, user, PurposeReset)
	require.NoError(t, err)

	saved, _ := store.FindByID(ctx, id)
	assert.Equal(t, second, saved.ResetOtp)
	if first != second {
		assert.Error(t, otp.Validate(saved, PurposeReset, first))
	}
}

func TestValidate_WrongOrEmptyCode(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)

	// nothing generated yet
	assert.ErrorIs(t, otp.Validate(user, PurposeVerify, "123456"), ErrInvalidOtp)

	code, err := otp.Generate(ctx, user, PurposeVerify)
	require.NoError(t, err)

	saved, _ := store.FindByID(ctx, id)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, otp.Validate(saved, PurposeVerify, wrong), ErrInvalidOtp)
	assert.NoError(t, otp.Validate(saved, PurposeVerify, code))
}

func TestValidate_ExpiryBoundary(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)
	code, err := otp.Generate(ctx, user, PurposeVerify)
	require.NoError(t, err)

	// exactly at the expiry instant: rejected
	user.VerifyOtpExpireAt = time.Now().UnixMilli()
	assert.ErrorIs(t, otp.Validate(user, PurposeVerify, code), ErrOtpExpired)

	// comfortably before expiry: accepted
	user.VerifyOtpExpireAt = time.Now().Add(time.Minute).UnixMilli()
	assert.NoError(t, otp.Validate(user, PurposeVerify, code))

	// long past expiry: rejected
	user.VerifyOtpExpireAt = time.Now().Add(-time.Minute).UnixMilli()
	assert.ErrorIs(t, otp.Validate(user, PurposeVerify, code), ErrOtpExpired)
}

func TestConsume_VerifyMarksAccountAndClearsFields(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)
	code, err := otp.Generate(ctx, user, PurposeVerify)
	require.NoError(t, err)

	require.NoError(t, otp.Validate(user, PurposeVerify, code))
	require.NoError(t, otp.Consume(ctx, user, PurposeVerify))

	saved, _ := store.FindByID(ctx, id)
	assert.True(t, saved.IsAccountVerified)
	assert.Empty(t, saved.VerifyOtp)
	assert.Zero(t, saved.VerifyOtpExpireAt)

	// the same code no longer validates
	assert.ErrorIs(t, otp.Validate(saved, PurposeVerify, code), ErrInvalidOtp)
}

func TestConsume_ResetClearsFieldsOnly(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)
	_, err := otp.Generate(ctx, user, PurposeReset)
	require.NoError(t, err)

	require.NoError(t, otp.Consume(ctx, user, PurposeReset))

	saved, _ := store.FindByID(ctx, id)
	assert.False(t, saved.IsAccountVerified)
	assert.Empty(t, saved.ResetOtp)
	assert.Zero(t, saved.ResetOtpExpireAt)
}

func TestPurposes_AreIndependent(t *testing.T) {
	store, otp, id := setupOtp(t)
	ctx := context.Background()

	user, _ := store.FindByID(ctx, id)
	verifyCode, err := otp.Generate(ctx, user, PurposeVerify)
	require.NoError(t, err)
	resetCode, err := otp.Generate(ctx, user, PurposeReset)
	require.NoError(t, err)

	saved, _ := store.FindByID(ctx, id)
	assert.NoError(t, otp.Validate(saved, PurposeVerify, verifyCode))
	assert.NoError(t, otp.Validate(saved, PurposeReset, resetCode))
	if verifyCode != resetCode {
		assert.ErrorIs(t, otp.Validate(saved, PurposeVerify, resetCode), ErrInvalidOtp)
		assert.ErrorIs(t, otp.Validate(saved, PurposeReset, verifyCode), ErrInvalidOtp)
	}
}
