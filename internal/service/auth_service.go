package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"rentx/internal/db"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
	"rentx/internal/repository"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	tokenLifetime = 30 * 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error)
	Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error)
	Profile(ctx context.Context, id int, role string) (*entities.ProfileResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret []byte
}

func NewAuthService(repo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{repo: repo, jwtSecret: []byte(jwtSecret)}
}

func (s *authService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &db.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if req.Phone != "" {
		user.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID, RoleUser)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: req.Phone,
		Role:  RoleUser,
		Token: token,
	}, nil
}

// Login checks the admins table first, then regular users. A matching email
// with a wrong password falls through to the same generic error, so the
// response does not leak which table the account lives in.
func (s *authService) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin != nil && bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) == nil {
		token, err := s.generateToken(admin.ID, RoleAdmin)
		if err != nil {
			return nil, err
		}
		return &entities.AuthResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Role:  RoleAdmin,
			Token: token,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user != nil && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) == nil {
		token, err := s.generateToken(user.ID, RoleUser)
		if err != nil {
			return nil, err
		}
		resp := &entities.AuthResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  RoleUser,
			Token: token,
		}
		if user.Phone.Valid {
			resp.Phone = user.Phone.String
		}
		return resp, nil
	}

	return nil, apperr.Unauthorized("invalid email or password")
}

func (s *authService) Profile(ctx context.Context, id int, role string) (*entities.ProfileResponse, error) {
	if role == RoleAdmin {
		admin, err := s.repo.GetAdminByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &entities.ProfileResponse{ID: admin.ID, Email: admin.Email, Role: RoleAdmin}, nil
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &entities.ProfileResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: RoleUser}
	if user.Phone.Valid {
		resp.Phone = user.Phone.String
	}
	return resp, nil
}

func (s *authService) generateToken(id int, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id,
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}
