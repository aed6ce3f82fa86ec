// Package repository defines the contestant store interface and its
// implementations against Postgres and in-memory state.
package repository

import (
	"context"

	"github.com/lagiland/scoreboard/internal/domain/model"
)

// Store provides durable access to contestant rows. The store is the sole
// owner of identity and creation instants.
type Store interface {
	// Create persists a contestant (id and timestamp are ignored) and
	// returns the store-assigned id.
	Create(ctx context.Context, c model.Contestant) (string, error)

	// List returns every contestant ordered by creation instant, most
	// recent first.
	List(ctx context.Context) ([]model.Contestant, error)

	// Delete removes exactly one contestant by id.
	// Returns ErrNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of persisted contestants.
	Count(ctx context.Context) (int64, error)
}
