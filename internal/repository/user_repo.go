package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"user-auth/internal/domain"
)

const uniqueViolation = "23505"

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownField   = errors.New("unknown user field")
)

// Nombres de campo aceptados por GetByID para proyectar columnas.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldTermsAccepted = "termsAccepted"
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldPhoneNumber   = "phoneNumber"
	FieldAbout         = "about"
	FieldCreatedAt     = "createdAt"
	FieldUpdatedAt     = "updatedAt"
)

// ProfileFields es la proyeccion segura usada por el endpoint de perfil.
var ProfileFields = []string{FieldName, FieldEmail, FieldFirstName, FieldLastName, FieldPhoneNumber, FieldAbout}

var allFields = []string{
	FieldID, FieldName, FieldEmail, FieldPassword, FieldTermsAccepted,
	FieldFirstName, FieldLastName, FieldPhoneNumber, FieldAbout, FieldCreatedAt, FieldUpdatedAt,
}

type column struct {
	name   string
	target func(u *domain.User) any
}

var columns = map[string]column{
	FieldID:            {"id", func(u *domain.User) any { return &u.ID }},
	FieldName:          {"name", func(u *domain.User) any { return &u.Name }},
	FieldEmail:         {"email", func(u *domain.User) any { return &u.Email }},
	FieldPassword:      {"password", func(u *domain.User) any { return &u.PasswordHash }},
	FieldTermsAccepted: {"terms_accepted", func(u *domain.User) any { return &u.TermsAccepted }},
	FieldFirstName:     {"first_name", func(u *domain.User) any { return &u.FirstName }},
	FieldLastName:      {"last_name", func(u *domain.User) any { return &u.LastName }},
	FieldPhoneNumber:   {"phone_number", func(u *domain.User) any { return &u.PhoneNumber }},
	FieldAbout:         {"about", func(u *domain.User) any { return &u.About }},
	FieldCreatedAt:     {"created_at", func(u *domain.User) any { return &u.CreatedAt }},
	FieldUpdatedAt:     {"updated_at", func(u *domain.User) any { return &u.UpdatedAt }},
}

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string, fields ...string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, id string, fields domain.ProfileFields) error
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	db dbtx
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, name, email, password, terms_accepted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.TermsAccepted,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID busca un usuario por id. Si se pasan fields solo se leen esas columnas.
func (r *PgUserRepository) GetByID(ctx context.Context, id string, fields ...string) (domain.User, error) {
	cols, targets, err := projection(fields)
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	query := "SELECT " + strings.Join(cols, ", ") + " FROM users WHERE id = $1"
	if err := r.db.QueryRow(ctx, query, id).Scan(bind(&u, targets)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	cols, targets, _ := projection(nil)
	var u domain.User
	query := "SELECT " + strings.Join(cols, ", ") + " FROM users WHERE email = $1"
	if err := r.db.QueryRow(ctx, query, email).Scan(bind(&u, targets)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// UpdateProfile solo toca los campos de perfil; email, password y terms_accepted quedan fuera.
func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, fields domain.ProfileFields) error {
	const query = `
		UPDATE users
		SET first_name = $2, last_name = $3, phone_number = $4, about = $5, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		id,
		fields.FirstName,
		fields.LastName,
		fields.PhoneNumber,
		fields.About,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func projection(fields []string) ([]string, []func(u *domain.User) any, error) {
	if len(fields) == 0 {
		fields = allFields
	}
	cols := make([]string, 0, len(fields))
	targets := make([]func(u *domain.User) any, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		c, ok := columns[f]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		cols = append(cols, c.name)
		targets = append(targets, c.target)
	}
	return cols, targets, nil
}

func bind(u *domain.User, targets []func(u *domain.User) any) []any {
	dest := make([]any, len(targets))
	for i, t := range targets {
		dest[i] = t(u)
	}
	return dest
}
