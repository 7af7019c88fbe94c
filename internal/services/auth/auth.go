// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/store-rating/internal/lib/events"
	"github.com/magabrotheeeer/store-rating/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating/internal/lib/password"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

var (
	// ErrEmailTaken — пользователь с таким email уже существует.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrIncorrectPassword — неверный текущий пароль при смене пароля.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken — токен не прошёл проверку или пользователь удалён.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService отвечает за регистрацию, вход, смену пароля и проверку JWT.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	publisher events.Publisher
	log       *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, publisher events.Publisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		publisher: publisher,
		log:       log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт обычного пользователя и сразу выдаёт ему токен.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	const op = "services.auth.Register"

	user, err := s.create(ctx, req.Name, req.Email, req.Password, req.Address, models.RoleNormalUser)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.AuthResult{User: user, Token: token}, nil
}

// CreateUser создаёт пользователя с произвольной ролью. Используется администратором.
func (s *AuthService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	const op = "services.auth.CreateUser"

	user, err := s.create(ctx, req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) create(ctx context.Context, name, email, rawPassword string, address *string, role models.Role) (models.User, error) {
	if address != nil && *address == "" {
		address = nil
	}
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		Address:      address,
		Role:         role,
		PasswordHash: hashed,
	})
	if errors.Is(err, repository.ErrConflict) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("user created", slog.String("id", user.ID), slog.String("role", string(user.Role)))
	if err := s.publisher.Publish(ctx, events.New(events.UserCreated, user.ID, user)); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", string(events.UserCreated)), sl.Err(err))
	}
	return user, nil
}

// Login проверяет пароль пользователя и выдаёт JWT.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (models.AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return models.AuthResult{}, ErrInvalidCredentials
		}
		return models.AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.AuthResult{User: *user, Token: token}, nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	const op = "services.auth.ChangePassword"

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return ErrIncorrectPassword
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Authenticate проверяет токен и заново загружает пользователя из хранилища,
// чтобы удалённые пользователи теряли доступ сразу.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
