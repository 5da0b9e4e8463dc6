package ports

import (
	"context"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// UserUpdate carries a partial user mutation; nil fields are left untouched.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Role         *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// CountByRole returns how many users currently hold the given role.
	CountByRole(ctx context.Context, role string) (int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
