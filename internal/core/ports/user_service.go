package ports

import (
	"context"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// UserUpdateInput carries a partial profile mutation from the transport
// layer; nil fields are left untouched. Password arrives in plaintext and is
// hashed by the service.
type UserUpdateInput struct {
	Email    *string
	Password *string
	Role     *string // admin only
}

// UserService implements account management on top of UserRepository.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// Update applies a partial mutation. Callers may edit their own profile;
	// only admins may edit others or change roles.
	Update(ctx context.Context, caller domain.Identity, id string, input UserUpdateInput) (*domain.User, error)
	// Delete removes the account and cascades to its schedule entries.
	// Admin only.
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
