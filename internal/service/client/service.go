package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/fixtures"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type clientServiceImpl struct {
	txm database.TxManager

	clientRepo client.ClientRepository
	levelRepo  level.LevelRepository
	typeRepo   leave.LeaveTypeRepository
}

func NewClientService(
	txm database.TxManager,
	clientRepo client.ClientRepository,
	levelRepo level.LevelRepository,
	typeRepo leave.LeaveTypeRepository,
) client.ClientService {
	return &clientServiceImpl{
		txm:        txm,
		clientRepo: clientRepo,
		levelRepo:  levelRepo,
		typeRepo:   typeRepo,
	}
}

// CreateClient implements client.ClientService. Client names are unique
// across the platform. New clients get the default level and leave type
// catalog so admins start from a working setup.
func (s *clientServiceImpl) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	if _, err := s.clientRepo.GetByName(ctx, req.Name); err == nil {
		return client.ClientResponse{}, client.ErrClientNameExists
	} else if !errors.Is(err, client.ErrClientNotFound) {
		return client.ClientResponse{}, fmt.Errorf("failed to check client name: %w", err)
	}

	var created client.Client
	err := s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.clientRepo.Create(ctx, client.Client{
			Name:  req.Name,
			Email: req.Email,
			Logo:  req.Logo,
			Color: req.Color,
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		return s.seedDefaults(ctx, created.ID)
	})
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToClientResponse(created), nil
}

func (s *clientServiceImpl) seedDefaults(ctx context.Context, clientID string) error {
	for _, seed := range fixtures.DefaultLevels() {
		description := seed.Description
		created, err := s.levelRepo.Create(ctx, level.Level{
			ClientID:    clientID,
			Name:        seed.Name,
			Description: &description,
		})
		if err != nil {
			return fmt.Errorf("failed to seed level %q: %w", seed.Name, err)
		}

		for _, lt := range seed.LeaveTypes {
			_, err := s.typeRepo.Create(ctx, leave.LeaveType{
				ClientID:       clientID,
				LevelID:        created.ID,
				Name:           lt.Name,
				DefaultBalance: lt.DefaultBalance,
			})
			if err != nil {
				return fmt.Errorf("failed to seed leave type %q: %w", lt.Name, err)
			}
		}
	}
	slog.Info("Seeded default catalog for new client", "client_id", clientID)
	return nil
}

// UpdateClient implements client.ClientService.
func (s *clientServiceImpl) UpdateClient(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ID); err != nil {
		return client.ClientResponse{}, err
	}

	if req.Name != nil {
		existing, err := s.clientRepo.GetByName(ctx, *req.Name)
		if err == nil && existing.ID != req.ID {
			return client.ClientResponse{}, client.ErrClientNameExists
		}
		if err != nil && !errors.Is(err, client.ErrClientNotFound) {
			return client.ClientResponse{}, fmt.Errorf("failed to check client name: %w", err)
		}
	}

	if err := s.clientRepo.Update(ctx, req); err != nil {
		return client.ClientResponse{}, err
	}

	updated, err := s.clientRepo.GetByID(ctx, req.ID)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToClientResponse(updated), nil
}

// GetClient implements client.ClientService.
func (s *clientServiceImpl) GetClient(ctx context.Context, id string) (client.ClientResponse, error) {
	found, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToClientResponse(found), nil
}

// ListClients implements client.ClientService. Super admin scope.
func (s *clientServiceImpl) ListClients(ctx context.Context) ([]client.ClientResponse, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.ToClientResponse(c))
	}
	return responses, nil
}
