package ports

import (
	"context"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// ConnectionRepository persists connection requests. At most one record exists
// per unordered pair of users.
type ConnectionRepository interface {
	// Create yields domain.ErrConnectionExists when the pair is already linked.
	Create(ctx context.Context, c *domain.Connection) (*domain.Connection, error)
	FindByID(ctx context.Context, id string) (*domain.Connection, error)
	// FindBetween looks the pair up in either direction.
	FindBetween(ctx context.Context, a, b string) (*domain.Connection, error)
	UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus) error
	Delete(ctx context.Context, id string) error
	ListPendingFor(ctx context.Context, receiverID string) ([]domain.Connection, error)
	CountAccepted(ctx context.Context, userID string) (int64, error)
}
