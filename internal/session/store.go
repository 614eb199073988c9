package session

import (
	"context"

	"shop-service/internal/model"
)

// Store keeps per-browser-session carts between requests. A missing key
// reads back as an empty cart, never as an error. Concurrent writes to the
// same key are last-write-wins; callers do read-modify-write without
// coordination.
type Store interface {
	Get(ctx context.Context, key string) (model.Cart, error)
	Set(ctx context.Context, key string, cart model.Cart) error
	Delete(ctx context.Context, key string) error
}
