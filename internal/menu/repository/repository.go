package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a document or checkpoint does not exist.
var ErrNotFound = errors.New("not found")

// IterOptions control which slice of the collection an iteration covers.
type IterOptions struct {
	// Skip drops a fixed number of leading documents (in _id order).
	Skip int64
	// AfterID, when non-nil, restricts the scan to documents whose _id is
	// strictly greater than it. Used to resume from a checkpoint.
	AfterID interface{}
}

// Iterator is the cursor shape the migration loop consumes. *mongo.Cursor
// satisfies it directly; the memory repository provides its own.
type Iterator interface {
	Next(ctx context.Context) bool
	Decode(v interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// Checkpoint records the last document a named migration run fully handled.
type Checkpoint struct {
	Job       string      `bson:"_id"`
	LastID    interface{} `bson:"lastId"`
	UpdatedAt time.Time   `bson:"updatedAt"`
}
