// Package migrate drives the one-shot menu image migration: it walks the
// menu collection, relocates every item image into the fixed bucket and
// rewrites the stored URLs.
package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xpriyanshu/img-upload-s3/internal/config"
	"github.com/0xpriyanshu/img-upload-s3/internal/menu"
	"github.com/0xpriyanshu/img-upload-s3/internal/menu/repository"
	"github.com/0xpriyanshu/img-upload-s3/pkg/logger"
)

// Store is what the runner needs from the menu repository.
type Store interface {
	Documents(ctx context.Context, opts repository.IterOptions) (repository.Iterator, error)
	UpdateItems(ctx context.Context, id interface{}, items []menu.MenuItem) error
	LoadCheckpoint(ctx context.Context, job string) (*repository.Checkpoint, error)
	SaveCheckpoint(ctx context.Context, job string, lastID interface{}) error
}

// ImageRelocator moves one image into the bucket and returns its new URL.
type ImageRelocator interface {
	Relocate(ctx context.Context, restaurantID, itemID, srcURL string) (string, error)
}

// Stats aggregates what happened across the whole run. A completed run with a
// large Fallbacks or Failed count is how an operator spots a systemic problem
// (e.g. a storage outage) that per-document logs would bury.
type Stats struct {
	Seen      int // documents pulled from the cursor
	Processed int // documents whose items array was rewritten
	Skipped   int // shape violations left untouched
	Failed    int // decode or update failures
	Relocated int // items whose image landed in the bucket
	Fallbacks int // items given the placeholder URL
}

func (s Stats) String() string {
	return fmt.Sprintf("seen=%d processed=%d skipped=%d failed=%d relocated=%d fallbacks=%d",
		s.Seen, s.Processed, s.Skipped, s.Failed, s.Relocated, s.Fallbacks)
}

// Runner walks the collection once, strictly sequentially. A document failure
// never aborts the run; only opening or advancing the cursor can.
type Runner struct {
	store     Store
	relocator ImageRelocator
	cfg       *config.Config
}

func NewRunner(store Store, relocator ImageRelocator, cfg *config.Config) *Runner {
	return &Runner{store: store, relocator: relocator, cfg: cfg}
}

func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	opts := repository.IterOptions{Skip: r.cfg.Job.Skip}
	if r.cfg.Job.Resume {
		cp, err := r.store.LoadCheckpoint(ctx, r.cfg.Job.Name)
		switch {
		case err == nil:
			opts.AfterID = cp.LastID
			logger.Infof("resuming after document %v", cp.LastID)
		case errors.Is(err, repository.ErrNotFound):
			// first run for this job name
		default:
			return stats, fmt.Errorf("load checkpoint: %w", err)
		}
	}

	iter, err := r.store.Documents(ctx, opts)
	if err != nil {
		return stats, fmt.Errorf("open cursor: %w", err)
	}
	defer iter.Close(ctx)

	for iter.Next(ctx) {
		stats.Seen++

		var doc menu.MenuDocument
		if err := iter.Decode(&doc); err != nil {
			logger.Errorf("decode document: %v", err)
			stats.Failed++
			continue
		}

		r.updateDocument(ctx, &doc, &stats)

		if err := r.store.SaveCheckpoint(ctx, r.cfg.Job.Name, doc.ID); err != nil {
			logger.Warnf("save checkpoint after document %v: %v", doc.ID, err)
		}
		if stats.Seen%100 == 0 {
			logger.Infof("progress: %s", stats)
		}
	}
	if err := iter.Err(); err != nil {
		return stats, fmt.Errorf("cursor: %w", err)
	}

	logger.Infof("migration complete: %s", stats)
	return stats, nil
}

// updateDocument rewrites one document's items and persists them. Shape
// violations skip the document untouched; a relocation failure downgrades the
// single item to the placeholder URL.
func (r *Runner) updateDocument(ctx context.Context, doc *menu.MenuDocument, stats *Stats) {
	restaurantID, ok := doc.Restaurant()
	if !ok {
		logger.Warnf("document %v has no restaurantId, skipping", doc.ID)
		stats.Skipped++
		return
	}
	items, err := doc.DecodeItems()
	if err != nil {
		logger.Warnf("document %v: %v, skipping", doc.ID, err)
		stats.Skipped++
		return
	}

	updated := make([]menu.MenuItem, 0, len(items))
	for _, item := range items {
		itemID := menu.FormatID(item.ID)
		src := item.ImageURL()
		switch {
		case src == "":
			logger.Infof("item %s/%s has no image, using placeholder", restaurantID, itemID)
			item.Image = r.cfg.Job.PlaceholderImage
			stats.Fallbacks++
		default:
			url, err := r.relocator.Relocate(ctx, restaurantID, itemID, src)
			if err != nil {
				logger.Errorf("relocate item %s/%s: %v", restaurantID, itemID, err)
				item.Image = r.cfg.Job.PlaceholderImage
				stats.Fallbacks++
			} else {
				item.Image = url
				stats.Relocated++
			}
		}
		updated = append(updated, item)
	}

	if err := r.store.UpdateItems(ctx, doc.ID, updated); err != nil {
		logger.Errorf("update document %v: %v", doc.ID, err)
		stats.Failed++
		return
	}
	stats.Processed++
	logger.Infof("document %v updated (%d items)", doc.ID, len(updated))
}
