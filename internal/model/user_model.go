package model

import "time"

// User is the credential record. OTP expiries are unix milliseconds; zero
// means no code is outstanding for that purpose.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"` // never JSON-encode
	IsAccountVerified bool       `json:"isAccountVerified"`
	VerifyOtp         string     `json:"-"`
	VerifyOtpExpireAt int64      `json:"-"`
	ResetOtp          string     `json:"-"`
	ResetOtpExpireAt  int64      `json:"-"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

// PublicUser is the only user shape handlers return.
type PublicUser struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		IsAccountVerified: u.IsAccountVerified,
	}
}
