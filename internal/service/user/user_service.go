package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/repository"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

type UserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	GetCurrent(ctx context.Context, userID int64) (domain.User, error)
	UpdateCurrent(ctx context.Context, userID int64, in UpdateInput) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateInput holds optional profile changes. Empty strings count as not supplied.
type UpdateInput struct {
	Username  string
	Email     string
	Password  string
	AvatarURL string
}

type UserService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return domain.User{}, domain.NewValidationError("Please enter all fields")
	}
	if err := checkPasswordSize(in.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.users.Create(ctx, domain.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.User{}, domain.NewValidationError("Please enter all fields")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return "", domain.User{}, err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

func (s *UserService) GetCurrent(ctx context.Context, userID int64) (domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return u, nil
}

func (s *UserService) UpdateCurrent(ctx context.Context, userID int64, in UpdateInput) (domain.User, error) {
	var upd domain.UserUpdate
	if v := strings.TrimSpace(in.Username); v != "" {
		upd.Username = &v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		upd.Email = &v
	}
	if v := strings.TrimSpace(in.AvatarURL); v != "" {
		upd.AvatarURL = &v
	}
	if in.Password != "" {
		if len(in.Password) < MinPasswordLength {
			return domain.User{}, domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
		}
		if err := checkPasswordSize(in.Password); err != nil {
			return domain.User{}, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return domain.User{}, err
		}
		upd.PasswordHash = &hash
	}
	if upd.Empty() {
		return domain.User{}, domain.NewValidationError("No fields to update provided.")
	}

	u, err := s.users.Update(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("update user %d: %w", userID, err)
	}
	return u, nil
}

func checkPasswordSize(password string) error {
	if len(password) > MaxPasswordBytes {
		return domain.NewValidationError(fmt.Sprintf("Password must be at most %d bytes long", MaxPasswordBytes))
	}
	return nil
}

var _ UserUseCase = (*UserService)(nil)
