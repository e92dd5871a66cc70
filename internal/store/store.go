package store

import (
	"context"
	"errors"
)

// Persisted state keys, mirroring the dashboard's saved user state.
const (
	KeyUnit       = "weather:unit"
	KeyTheme      = "weather:theme"
	KeyComparison = "weather:comparison"
	KeyHistory    = "weather:history"
	KeyLastCity   = "weather:lastCity"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("no value for key")

// Store is the durable key/value contract the session state is persisted
// through. Writes are synchronous; a Set is visible to the next Get.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
