package repository

import (
	"context"
	"errors"
	"time"

	"UserAuthAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, passwordhash, is_account_verified,
	verify_otp, verify_otp_expire_at, reset_otp, reset_otp_expire_at, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var createdAt time.Time
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAccountVerified,
		&u.VerifyOtp, &u.VerifyOtpExpireAt, &u.ResetOtp, &u.ResetOtpExpireAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt = &createdAt
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.DB.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.DB.QueryRow(ctx, query, id))
}

// Create inserts a new user with a fresh uuid. Duplicate emails surface as
// ErrConflict via the unique index.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	id := uuid.NewString()
	query := `INSERT INTO users (id, name, email, passwordhash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	var createdAt time.Time
	if err := r.DB.QueryRow(ctx, query, id, name, email, passwordHash).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    &createdAt,
	}, nil
}

// Save persists every mutable field of the record in place.
func (r *UserRepository) Save(ctx context.Context, u *model.User) error {
	query := `UPDATE users
		SET name=$2, email=$3, passwordhash=$4, is_account_verified=$5,
		    verify_otp=$6, verify_otp_expire_at=$7, reset_otp=$8, reset_otp_expire_at=$9
		WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.IsAccountVerified,
		u.VerifyOtp, u.VerifyOtpExpireAt, u.ResetOtp, u.ResetOtpExpireAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
