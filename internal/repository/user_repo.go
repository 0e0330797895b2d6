package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentx/internal/db"
	apperr "rentx/internal/errors"
)

// UserRepository covers both customer accounts and the admins table.
type UserRepository interface {
	CreateUser(ctx context.Context, u *db.User) error
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id int) (*db.User, error)
	GetAdminByEmail(ctx context.Context, email string) (*db.Admin, error)
	GetAdminByID(ctx context.Context, id int) (*db.Admin, error)
	UpsertAdmin(ctx context.Context, email, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) CreateUser(ctx context.Context, u *db.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, phone, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Phone,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return translateError(err, "email already registered")
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(fmt.Errorf("error querying user: %w", err))
	}
	return &u, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int) (*db.User, error) {
	var u db.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, phone, created_at
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user %d not found", id))
		}
		return nil, apperr.Storage(fmt.Errorf("error querying user: %w", err))
	}
	return &u, nil
}

func (r *userRepository) GetAdminByEmail(ctx context.Context, email string) (*db.Admin, error) {
	var a db.Admin
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Storage(fmt.Errorf("error querying admin: %w", err))
	}
	return &a, nil
}

func (r *userRepository) GetAdminByID(ctx context.Context, id int) (*db.Admin, error) {
	var a db.Admin
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("admin %d not found", id))
		}
		return nil, apperr.Storage(fmt.Errorf("error querying admin: %w", err))
	}
	return &a, nil
}

// UpsertAdmin is used only by the provisioning command. It is idempotent so
// the command can run on every deploy without duplicating accounts.
func (r *userRepository) UpsertAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		email, passwordHash)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error upserting admin: %w", err))
	}
	return nil
}
