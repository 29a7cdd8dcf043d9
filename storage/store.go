package storage

import (
	"context"
	"errors"
	"time"
)

// DefaultPageTTL is how long exported PNG pages stay downloadable
const DefaultPageTTL = 10 * time.Minute

var (
	// ErrSessionNotFound means the session expired or never existed
	ErrSessionNotFound = errors.New("session expired or not found")
	// ErrPageNotFound means the session exists but has no such page
	ErrPageNotFound = errors.New("page not found")
)

// PageStore keeps exported catalog pages for a short time so they can be
// downloaded one by one
type PageStore interface {
	Put(ctx context.Context, session string, pages map[int][]byte) error
	Get(ctx context.Context, session string, page int) ([]byte, error)
}
