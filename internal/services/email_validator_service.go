package services

import "context"

// EmailValidator vets an address beyond syntax, e.g. via an external
// reputation API.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}
