package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/config"
	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/security"
)

// Service defines identity operations on top of the users repository.
type Service interface {
	Upsert(ctx context.Context, input UpsertUserInput) (*models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AssignRole(ctx context.Context, id uuid.UUID, role enums.Role) (*models.User, error)
	RoleByEmail(ctx context.Context, email string) (enums.Role, error)
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds a users service with the required dependencies.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		repo:        repo,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Upsert creates the user or refreshes name/password on an existing one.
// New users always start with an unset role; an existing role is never
// touched here.
func (s *service) Upsert(ctx context.Context, input UpsertUserInput) (*models.User, error) {
	input = input.normalized()
	if input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	var hash *string
	if input.Password != "" {
		hashed, err := security.HashPassword(input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
		}
		hash = &hashed
	}

	user, err := s.repo.Upsert(ctx, input.toModel(hash, s.now().UTC()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upserting user")
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	return users, nil
}

// AssignRole sets the user's role. Only assigned roles are accepted; the
// unset sentinel cannot be written back through this path.
func (s *service) AssignRole(ctx context.Context, id uuid.UUID, role enums.Role) (*models.User, error) {
	if !role.IsValid() || !role.IsAssigned() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be buyer, seller or admin")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	affected, err := s.repo.SetRole(ctx, user.ID, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating role")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpdateFailed, "role update modified no records")
	}

	user.Role = role
	return user, nil
}

// RoleByEmail resolves the persisted role for an email. Used by the role
// guard so that role changes take effect on the very next request.
func (s *service) RoleByEmail(ctx context.Context, email string) (enums.Role, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return enums.RoleUnset, err
	}
	return user.Role, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
