package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/studyquiz/internal/domain/entities"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

type UserService struct {
	repository UserRepository
	resultRepo QuizResultRepository
	tr         Transactor
	hashCost   int
}

func NewUserService(repository UserRepository, resultRepo QuizResultRepository, tr Transactor) *UserService {
	return &UserService{
		repository: repository,
		resultRepo: resultRepo,
		tr:         tr,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Authenticate returns the user owning email when password matches.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.repository.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Create registers a user with a salted password hash.
func (s *UserService) Create(ctx context.Context, in UserInput) (*entities.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entities.NewUser(in.Email, string(hash), in.Nickname, in.IsAdmin)
	if err := s.repository.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// EnsureAdmin creates the administrator account unless the email is already registered.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	exists, err := s.repository.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = s.Create(ctx, UserInput{Email: email, Password: password, IsAdmin: true})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repository.List(ctx)
}

// Delete removes a user together with their answer history.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.resultRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		if err := s.repository.Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
