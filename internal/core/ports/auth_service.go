package ports

import (
	"context"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// AuthService issues and backs bearer tokens.
type AuthService interface {
	// Register creates an account. When displayName is empty it is derived
	// from the email local-part. Returns the created user and a signed token.
	Register(ctx context.Context, email, password, displayName string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// GetSelf resolves the authenticated identity back to its full record.
	GetSelf(ctx context.Context, userID string) (*domain.User, error)
}
