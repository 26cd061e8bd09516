package relocate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	objects     map[string][]byte
	contentType map[string]string
	err         error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeUploader) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.contentType[key] = contentType
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return fmt.Sprintf("https://bucket.s3.region.amazonaws.com/%s", key)
}

func TestKey(t *testing.T) {
	require.Equal(t, "42/42-1.jpg", Key("42", "1"))
}

func TestRelocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	up := newFakeUploader()
	rel := New(up, 5*time.Second)

	url, err := rel.Relocate(context.Background(), "42", "1", srv.URL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, "https://bucket.s3.region.amazonaws.com/42/42-1.jpg", url)

	// bytes land under the jpg key with a fixed content type, whatever the
	// source served
	require.Equal(t, []byte("png-bytes"), up.objects["42/42-1.jpg"])
	require.Equal(t, "image/jpeg", up.contentType["42/42-1.jpg"])
}

func TestRelocateFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	up := newFakeUploader()
	rel := New(up, 5*time.Second)

	_, err := rel.Relocate(context.Background(), "42", "1", srv.URL+"/a.png")
	require.Error(t, err)
	require.Empty(t, up.objects, "nothing should be uploaded when the fetch fails")
}

func TestRelocateUnreachableHost(t *testing.T) {
	up := newFakeUploader()
	rel := New(up, 250*time.Millisecond)

	_, err := rel.Relocate(context.Background(), "42", "1", "http://127.0.0.1:0/a.png")
	require.Error(t, err)
	require.Empty(t, up.objects)
}

func TestRelocateUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	up := newFakeUploader()
	up.err = errors.New("bucket unavailable")
	rel := New(up, 5*time.Second)

	_, err := rel.Relocate(context.Background(), "42", "1", srv.URL+"/a.png")
	require.Error(t, err)
	require.ErrorContains(t, err, "bucket unavailable")
}
