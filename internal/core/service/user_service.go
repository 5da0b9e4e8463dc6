package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

type userService struct {
	users     ports.UserRepository
	schedules ports.ScheduleRepository
	log       zerolog.Logger
}

// NewUserService returns a UserService implementation. The schedule
// repository is needed for the delete cascade.
func NewUserService(users ports.UserRepository, schedules ports.ScheduleRepository, log zerolog.Logger) ports.UserService {
	return &userService{users: users, schedules: schedules, log: log}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, caller domain.Identity, id string, input ports.UserUpdateInput) (*domain.User, error) {
	if err := caller.RequireOwnerOrAdmin(id); err != nil {
		return nil, err
	}
	// Role changes are an admin privilege even on one's own account.
	if input.Role != nil && !caller.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrMissingFields, *input.Role)
	}

	update := ports.UserUpdate{Email: input.Email, Role: input.Role}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domain.ErrMissingFields
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("by", caller.UserID).Msg("user updated")
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	// Cascade: a deleted user leaves no orphaned calendar rows behind.
	if err := s.schedules.DeleteByOwner(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to cascade schedule delete")
		return fmt.Errorf("delete user: cascade schedules: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("by", caller.UserID).Msg("user deleted")
	return nil
}
