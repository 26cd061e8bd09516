// Package relocate moves a menu item's image from its original URL into the
// fixed restaurant-images bucket.
package relocate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Objects are always stored as jpeg regardless of the source content type;
// downstream consumers key off the extension.
const contentType = "image/jpeg"

// Uploader is the slice of the storage client the relocator needs.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

type Relocator struct {
	uploader Uploader
	http     *http.Client
}

func New(uploader Uploader, fetchTimeout time.Duration) *Relocator {
	return &Relocator{
		uploader: uploader,
		http:     &http.Client{Timeout: fetchTimeout},
	}
}

// Key builds the storage key for a restaurant's menu item image.
func Key(restaurantID, itemID string) string {
	return fmt.Sprintf("%s/%s-%s.jpg", restaurantID, restaurantID, itemID)
}

// Relocate fetches srcURL and writes the bytes to the bucket under the
// deterministic item key, overwriting any previous object. It returns the
// public URL of the stored object. Any fetch or upload failure propagates;
// recovery is the caller's job.
func (r *Relocator) Relocate(ctx context.Context, restaurantID, itemID, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", srcURL, err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", srcURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", srcURL, err)
	}

	key := Key(restaurantID, itemID)
	if err := r.uploader.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return r.uploader.PublicURL(key), nil
}
