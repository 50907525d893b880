package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
)

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	// GetByID returns the cart with its lines in position order, or
	// (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	// GetOpenByTarget returns the open (unsubmitted) cart bound to a target,
	// or (nil, nil) when absent.
	GetOpenByTarget(ctx context.Context, target string) (*entity.Cart, error)
	// GetByOrderReference finds the submitted cart behind an order, looking
	// through soft-deleted rows since submission retires the cart.
	GetByOrderReference(ctx context.Context, orderReference string) (*entity.Cart, error)
	// Save persists the cart and replaces its line set atomically.
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired discards carts not touched since the cutoff (TTL sweep).
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
