// Package store defines paper persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"context"
	"errors"

	"github.com/qiwen-lab/papertrack/internal/paper"
)

var (
	// ErrNotFound indicates the requested paper does not exist.
	// Callers should check for this to distinguish missing data from other errors.
	ErrNotFound = errors.New("paper not found")
)

// Record pairs a paper with its storage metadata.
type Record struct {
	UID       string // 16-hex-char identity hash, primary key
	Paper     paper.Paper
	CreatedAt int64 // Unix timestamp of first insert
	UpdatedAt int64 // Unix timestamp of last write
}

// ListOptions filters a List call. Zero values mean "no filter".
type ListOptions struct {
	Category string // match the category attribute exactly
	Status   string // match the status attribute exactly
}

// Store defines all paper persistence operations.
//
// Obtain an implementation with Open, and always call Close when done
// (use defer).
type Store interface {
	// Init creates tables and indexes if they don't exist.
	Init() error

	// Close releases database resources.
	Close() error

	// Put inserts or updates a paper, keyed by its identity UID.
	Put(ctx context.Context, p *paper.Paper) error

	// Get returns the paper with the given UID, or ErrNotFound.
	Get(ctx context.Context, uid string) (*Record, error)

	// List returns papers matching the options, ordered by category then
	// submission time.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Delete removes the paper with the given UID. Missing papers return
	// ErrNotFound.
	Delete(ctx context.Context, uid string) error

	// Count returns the number of stored papers.
	Count(ctx context.Context) (int, error)
}
