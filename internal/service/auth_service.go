package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"user-auth/internal/domain"
	"user-auth/internal/repository"
)

const minPasswordLength = 8

// Mensajes de validacion expuestos al cliente.
const (
	MsgSignupFieldsRequired = "All required fields (name, email, password, termsAccepted) must be provided."
	MsgTermsNotAccepted     = "You must accept the terms and conditions."
	MsgPasswordTooShort     = "Password must be at least 8 characters long."
	MsgProfileFieldsMissing = "All fields are required"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError describe una entrada rechazada; Message es apto para el cliente.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// AuthService coordina las reglas de registro y login.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	hasher PasswordHasher
	tokens *TokenService
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, tokens *TokenService) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignupInput llega del handler. TermsAccepted es nil cuando el campo no vino en el body.
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	TermsAccepted *bool
}

type SignupResult struct {
	User  domain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (SignupResult, error) {
	if s.users == nil || s.hasher == nil || s.tokens == nil {
		return SignupResult{}, errors.New("auth service not configured")
	}

	if input.Name == "" || input.Email == "" || input.Password == "" || input.TermsAccepted == nil {
		return SignupResult{}, newValidationError(MsgSignupFieldsRequired)
	}
	if !*input.TermsAccepted {
		return SignupResult{}, newValidationError(MsgTermsNotAccepted)
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return SignupResult{}, newValidationError(MsgPasswordTooShort)
	}

	// Atajo: el indice unico en users.email sigue siendo la garantia real.
	_, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return SignupResult{}, ErrEmailTaken
	case !errors.Is(err, pgx.ErrNoRows):
		return SignupResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return SignupResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  hash,
		TermsAccepted: true,
		CreatedAt:     time.Now().UTC(),
	}
	user.UpdatedAt = user.CreatedAt

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.logger.Info("signup lost duplicate email race", zap.String("email", input.Email))
			return SignupResult{}, ErrEmailTaken
		}
		return SignupResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return SignupResult{}, fmt.Errorf("issue token: %w", err)
	}

	return SignupResult{User: user, Token: token}, nil
}

// Login valida credenciales y emite un token. Email inexistente y password incorrecto
// devuelven el mismo error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.users == nil || s.hasher == nil || s.tokens == nil {
		return "", errors.New("auth service not configured")
	}
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
