package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/0xpriyanshu/img-upload-s3/internal/menu"
)

// MemoryRepo is an in-memory repository with the same surface as MongoRepo,
// used by runner tests. Documents are held as raw bson so iteration decodes
// the same way a real cursor does.
type MemoryRepo struct {
	mu          sync.Mutex
	docs        []bson.Raw
	updates     map[string][]menu.MenuItem
	checkpoints map[string]*Checkpoint
	UpdateErr   error // when set, UpdateItems fails with it
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		updates:     map[string][]menu.MenuItem{},
		checkpoints: map[string]*Checkpoint{},
	}
}

// Add appends a document in natural order.
func (m *MemoryRepo) Add(doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, bson.Raw(raw))
	return nil
}

func (m *MemoryRepo) Documents(_ context.Context, opts IterOptions) (Iterator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.docs
	if opts.AfterID != nil {
		after := menu.FormatID(opts.AfterID)
		for i, raw := range docs {
			if rawID(raw) == after {
				docs = docs[i+1:]
				break
			}
		}
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(docs)) {
			docs = nil
		} else {
			docs = docs[opts.Skip:]
		}
	}
	return &sliceIterator{docs: docs, pos: -1}, nil
}

func rawID(raw bson.Raw) string {
	var d struct {
		ID interface{} `bson:"_id"`
	}
	if err := bson.Unmarshal(raw, &d); err != nil {
		return ""
	}
	return menu.FormatID(d.ID)
}

func (m *MemoryRepo) UpdateItems(_ context.Context, id interface{}, items []menu.MenuItem) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[menu.FormatID(id)] = items
	return nil
}

// Updated returns the items written for a document id, if any.
func (m *MemoryRepo) Updated(id interface{}) ([]menu.MenuItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.updates[menu.FormatID(id)]
	return items, ok
}

func (m *MemoryRepo) LoadCheckpoint(_ context.Context, job string) (*Checkpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.checkpoints[job]
	if !ok {
		return nil, ErrNotFound
	}
	return cp, nil
}

func (m *MemoryRepo) SaveCheckpoint(_ context.Context, job string, lastID interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkpoints[job] = &Checkpoint{Job: job, LastID: lastID, UpdatedAt: time.Now()}
	return nil
}

type sliceIterator struct {
	docs []bson.Raw
	pos  int
}

func (it *sliceIterator) Next(context.Context) bool {
	it.pos++
	return it.pos < len(it.docs)
}

func (it *sliceIterator) Decode(v interface{}) error {
	return bson.Unmarshal(it.docs[it.pos], v)
}

func (it *sliceIterator) Err() error { return nil }

func (it *sliceIterator) Close(context.Context) error { return nil }
