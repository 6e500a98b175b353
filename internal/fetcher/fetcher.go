// Package fetcher downloads the ANAC open-data aerodrome listings.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the downloader.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RateLimit  rate.Limit // requests per second against the ANAC host
	Burst      int
}

// Source names one remote dataset file.
type Source struct {
	Key string // dataset key, becomes the local file stem
	URL string
}

// DefaultSources lists the ANAC open-data aerodrome listings.
func DefaultSources() []Source {
	return []Source{
		{
			Key: "AerodromosPublicos",
			URL: "https://sistemas.anac.gov.br/dadosabertos/Aerodromos/Aer%C3%B3dromos%20P%C3%BAblicos/Lista%20de%20aer%C3%B3dromos%20p%C3%BAblicos/AerodromosPublicos.csv",
		},
		{
			Key: "AerodromosPrivados",
			URL: "https://sistemas.anac.gov.br/dadosabertos/Aerodromos/Aer%C3%B3dromos%20Privados/Lista%20de%20aer%C3%B3dromos%20privados/Aerodromos%20Privados/AerodromosPrivados.csv",
		},
	}
}

// Fetcher downloads dataset files with retry and rate limiting.
type Fetcher struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
}

// New creates a Fetcher, filling unset options with defaults.
func New(opts Options) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "aeromapa/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 2
	}
	if opts.Burst == 0 {
		opts.Burst = 2
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
	}
}

// Download fetches every source into dir, named <Key>.csv. It returns the
// local paths of the files that were written.
func (f *Fetcher) Download(ctx context.Context, sources []Source, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "fetcher: mkdir %s", dir)
	}

	var paths []string
	for _, src := range sources {
		path := filepath.Join(dir, src.Key+".csv")
		if err := f.downloadOne(ctx, src.URL, path); err != nil {
			return paths, eris.Wrapf(err, "fetcher: download %s", src.Key)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (f *Fetcher) downloadOne(ctx context.Context, url, path string) error {
	var lastErr error
	for attempt := 0; attempt < f.opts.MaxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "rate limiter wait")
		}

		if err := f.tryDownload(ctx, url, path); err != nil {
			lastErr = err
			zap.L().Warn("fetcher: download failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}
		return nil
	}
	return eris.Wrapf(lastErr, "fetcher: giving up after %d attempts", f.opts.MaxRetries)
}

func (f *Fetcher) tryDownload(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return eris.Wrapf(err, "create %s", tmp)
	}

	n, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return eris.Wrap(err, "copy body")
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return eris.Wrap(closeErr, "close file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return eris.Wrapf(err, "rename %s", path)
	}

	zap.L().Info("fetcher: downloaded",
		zap.String("url", url),
		zap.String("path", path),
		zap.Int64("bytes", n),
	)
	return nil
}

func (f *Fetcher) backoff(ctx context.Context, attempt int) {
	d := time.Duration(1<<attempt) * time.Second
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
