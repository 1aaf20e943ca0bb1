package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"UserAuthAPI/internal/model"
	"UserAuthAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrEmailNotRegistered = errors.New("this email is not registered with us")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// AuthService orchestrates signup, login, OTP verification and password
// reset over the credential store. Token issuance and the session cookie
// stay in the endpoint layer.
type AuthService struct {
	Users     UserStore
	Otp       *OtpManager
	Mailer    EmailSender
	Validator EmailValidator
}

func NewAuthService(u UserStore, otp *OtpManager, mailer EmailSender, validator EmailValidator) *AuthService {
	return &AuthService{Users: u, Otp: otp, Mailer: mailer, Validator: validator}
}

func (s *AuthService) validateEmail(ctx context.Context, email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w format", ErrInvalidEmail)
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	return nil
}

// Signup creates the user, then dispatches the welcome mail. The caller
// issues the session token only after the record is durable.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if err := s.validateEmail(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.Create(ctx, name, email, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	dispatchEmail(s.Mailer, email, welcomeSubject, renderTemplate(welcomeTemplate, map[string]string{
		"name":  name,
		"email": email,
	}))

	return user, nil
}

// Login authenticates with email + password. Both miss cases return the
// same generic error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SendVerifyOtp generates a verification code for an authenticated user and
// mails it. Already-verified accounts are rejected before generation.
func (s *AuthService) SendVerifyOtp(ctx context.Context, userID string) error {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}

	code, err := s.Otp.Generate(ctx, user, PurposeVerify)
	if err != nil {
		return err
	}

	dispatchEmail(s.Mailer, user.Email, verifyOtpSubject, renderTemplate(verifyOtpTemplate, map[string]string{
		"otp":   code,
		"email": user.Email,
	}))
	return nil
}

// VerifyEmail validates and consumes a verification code for the user.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, otp string) error {
	if userID == "" || otp == "" {
		return ErrMissingFields
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.Otp.Validate(user, PurposeVerify, otp); err != nil {
		return err
	}
	return s.Otp.Consume(ctx, user, PurposeVerify)
}

// SendResetOtp generates a reset code for the address and mails it. The
// email itself is the credential here; no session is required.
func (s *AuthService) SendResetOtp(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return ErrEmailNotRegistered
	}

	code, err := s.Otp.Generate(ctx, user, PurposeReset)
	if err != nil {
		return err
	}

	dispatchEmail(s.Mailer, user.Email, resetOtpSubject, renderTemplate(resetOtpTemplate, map[string]string{
		"otp":   code,
		"email": user.Email,
	}))
	return nil
}

// ResetPassword swaps the password hash once the reset code checks out,
// then clears the reset fields.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if email == "" || otp == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return ErrEmailNotRegistered
	}
	if err := s.Otp.Validate(user, PurposeReset, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.Otp.Consume(ctx, user, PurposeReset)
}

// GetUserData returns the record behind an authenticated principal.
func (s *AuthService) GetUserData(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
