package dao

import (
	"context"
)

// Service persists entities of type T addressed by key K
type Service[K comparable, T any] interface {
	Save(ctx context.Context, id K, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]K, error)
}
