package services

import (
	"context"

	"UserAuthAPI/internal/model"
)

// UserStore is the credential-store contract the services consume.
// *repository.UserRepository satisfies it; tests use an in-memory fake.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	Save(ctx context.Context, u *model.User) error
}
