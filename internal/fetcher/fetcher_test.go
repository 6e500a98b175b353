package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Nome;Latitude;Longitude\nTeste;-23,5;-46,6\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(Options{RateLimit: 100, Burst: 10})

	paths, err := f.Download(context.Background(), []Source{{Key: "Teste", URL: srv.URL}}, dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "Teste.csv"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Nome;Latitude;Longitude")

	// No partial file left behind.
	_, err = os.Stat(paths[0] + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(Options{RateLimit: 100, Burst: 10, MaxRetries: 3})

	paths, err := f.Download(context.Background(), []Source{{Key: "X", URL: srv.URL}}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestDownloadGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Options{RateLimit: 100, Burst: 10, MaxRetries: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := f.Download(ctx, []Source{{Key: "X", URL: srv.URL}}, t.TempDir())
	assert.Error(t, err)
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.Len(t, sources, 2)
	for _, s := range sources {
		assert.NotEmpty(t, s.Key)
		assert.Contains(t, s.URL, "anac.gov.br")
	}
}
