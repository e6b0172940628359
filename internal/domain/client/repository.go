package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	GetByName(ctx context.Context, name string) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, req UpdateClientRequest) error
}
