package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrExists   = errors.New("product already exists")
	ErrNotFound = errors.New("product not found")
)

// Product is the single record an owner may hold.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Store holds at most one Product per owner identifier. Nil update fields
// leave the corresponding column untouched.
type Store interface {
	Create(ctx context.Context, owner uuid.UUID, p Product) error
	Get(ctx context.Context, owner uuid.UUID) (Product, error)
	Update(ctx context.Context, owner uuid.UUID, name, description *string) error
	Delete(ctx context.Context, owner uuid.UUID) error
	Ping(ctx context.Context) error
}
