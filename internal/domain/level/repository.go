package level

import "context"

type LevelRepository interface {
	Create(ctx context.Context, l Level) (Level, error)
	GetByID(ctx context.Context, id, clientID string) (Level, error)
	GetByName(ctx context.Context, clientID, name string) (Level, error)
	GetByClientID(ctx context.Context, clientID string) ([]Level, error)
	Update(ctx context.Context, req UpdateLevelRequest, clientID string) error
	Delete(ctx context.Context, id, clientID string) error

	// GetCatalog returns the level's leave types with their default balances,
	// the source of truth for balance reseeding.
	GetCatalog(ctx context.Context, id, clientID string) ([]CatalogEntry, error)
}
