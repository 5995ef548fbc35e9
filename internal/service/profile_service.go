package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"user-auth/internal/domain"
	"user-auth/internal/repository"
)

// ProfileService lee y actualiza el perfil del usuario autenticado.
type ProfileService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewProfileService(logger *zap.Logger, users repository.UserRepository) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{logger: logger, users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID, repository.ProfileFields...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrUserNotFound
		}
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return user.Profile(), nil
}

// UpdateProfile exige los cuatro campos y solo modifica la fila de userID.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, fields domain.ProfileFields) error {
	if fields.FirstName == "" || fields.LastName == "" || fields.PhoneNumber == "" || fields.About == "" {
		return newValidationError(MsgProfileFieldsMissing)
	}
	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
