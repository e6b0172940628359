package level

import (
	"context"
	"errors"
	"fmt"

	"github.com/leavehq/leave-backend-go/internal/domain/level"
)

type levelServiceImpl struct {
	levelRepo level.LevelRepository
}

func NewLevelService(levelRepo level.LevelRepository) level.LevelService {
	return &levelServiceImpl{levelRepo: levelRepo}
}

// CreateLevel implements level.LevelService. Level names are unique per
// client.
func (s *levelServiceImpl) CreateLevel(ctx context.Context, clientID string, req level.CreateLevelRequest) (level.LevelResponse, error) {
	if err := req.Validate(); err != nil {
		return level.LevelResponse{}, err
	}

	if _, err := s.levelRepo.GetByName(ctx, clientID, req.Name); err == nil {
		return level.LevelResponse{}, level.ErrLevelNameExists
	} else if !errors.Is(err, level.ErrLevelNotFound) {
		return level.LevelResponse{}, fmt.Errorf("failed to check level name: %w", err)
	}

	created, err := s.levelRepo.Create(ctx, level.Level{
		ClientID:    clientID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return level.LevelResponse{}, fmt.Errorf("failed to create level: %w", err)
	}
	return level.ToLevelResponse(created), nil
}

// UpdateLevel implements level.LevelService.
func (s *levelServiceImpl) UpdateLevel(ctx context.Context, clientID string, req level.UpdateLevelRequest) (level.LevelResponse, error) {
	if err := req.Validate(); err != nil {
		return level.LevelResponse{}, err
	}

	if _, err := s.levelRepo.GetByID(ctx, req.ID, clientID); err != nil {
		return level.LevelResponse{}, err
	}

	if req.Name != nil {
		existing, err := s.levelRepo.GetByName(ctx, clientID, *req.Name)
		if err == nil && existing.ID != req.ID {
			return level.LevelResponse{}, level.ErrLevelNameExists
		}
		if err != nil && !errors.Is(err, level.ErrLevelNotFound) {
			return level.LevelResponse{}, fmt.Errorf("failed to check level name: %w", err)
		}
	}

	if err := s.levelRepo.Update(ctx, req, clientID); err != nil {
		return level.LevelResponse{}, err
	}

	updated, err := s.levelRepo.GetByID(ctx, req.ID, clientID)
	if err != nil {
		return level.LevelResponse{}, err
	}
	return level.ToLevelResponse(updated), nil
}

// GetLevel implements level.LevelService.
func (s *levelServiceImpl) GetLevel(ctx context.Context, id, clientID string) (level.LevelResponse, error) {
	found, err := s.levelRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return level.LevelResponse{}, err
	}
	return level.ToLevelResponse(found), nil
}

// ListLevels implements level.LevelService.
func (s *levelServiceImpl) ListLevels(ctx context.Context, clientID string) ([]level.LevelResponse, error) {
	levels, err := s.levelRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	responses := make([]level.LevelResponse, 0, len(levels))
	for _, l := range levels {
		responses = append(responses, level.ToLevelResponse(l))
	}
	return responses, nil
}

// DeleteLevel implements level.LevelService. Levels still referenced by
// leave types cannot be removed.
func (s *levelServiceImpl) DeleteLevel(ctx context.Context, id, clientID string) error {
	if _, err := s.levelRepo.GetByID(ctx, id, clientID); err != nil {
		return err
	}

	catalog, err := s.levelRepo.GetCatalog(ctx, id, clientID)
	if err != nil {
		return fmt.Errorf("failed to load level catalog: %w", err)
	}
	if len(catalog) > 0 {
		return level.ErrLevelInUse
	}

	return s.levelRepo.Delete(ctx, id, clientID)
}
