// Package session keeps per-browser state on the server, keyed by an id the
// client carries in a signed cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Data is everything a request needs to know about its caller.
type Data struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type Store interface {
	Save(ctx context.Context, id string, d Data, ttl time.Duration) error
	Load(ctx context.Context, id string) (Data, error)
	Delete(ctx context.Context, id string) error
}
