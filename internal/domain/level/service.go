package level

import "context"

type LevelService interface {
	CreateLevel(ctx context.Context, clientID string, req CreateLevelRequest) (LevelResponse, error)
	UpdateLevel(ctx context.Context, clientID string, req UpdateLevelRequest) (LevelResponse, error)
	GetLevel(ctx context.Context, id, clientID string) (LevelResponse, error)
	ListLevels(ctx context.Context, clientID string) ([]LevelResponse, error)
	DeleteLevel(ctx context.Context, id, clientID string) error
}
