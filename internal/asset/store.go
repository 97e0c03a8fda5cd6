// Package asset keeps the composition's audio and still images in a local
// cache directory. Everything is fetched and decoded before rendering
// starts, so frame rendering never waits on I/O.
package asset

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

var ErrNotCached = errors.New("asset not cached")

// Store maps asset URIs to files under Dir. A failed download is retried
// up to Retries times with exponential backoff starting at RetryInterval.
type Store struct {
	Dir           string
	Client        *http.Client
	Retries       int
	RetryInterval time.Duration

	mu     sync.RWMutex
	images map[string]image.Image
}

func NewStore(dir string) *Store {
	return &Store{
		Dir:           dir,
		Client:        &http.Client{Timeout: 2 * time.Minute},
		Retries:       3,
		RetryInterval: time.Second,
		images:        make(map[string]image.Image),
	}
}

func remote(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// Path returns where uri lives on disk. Local paths are returned as is;
// remote files are named by a short hash plus the URL's base name.
func (s *Store) Path(uri string) string {
	if !remote(uri) {
		return strings.TrimPrefix(uri, "file://")
	}
	base := "asset"
	if u, err := url.Parse(uri); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
		base = path.Base(u.Path)
	}
	sum := sha1.Sum([]byte(uri))
	return filepath.Join(s.Dir, hex.EncodeToString(sum[:4])+"_"+base)
}

// Cached reports whether uri is on disk.
func (s *Store) Cached(uri string) bool {
	_, err := os.Stat(s.Path(uri))
	return err == nil
}

// Fetch downloads uri into the cache unless it is already there.
func (s *Store) Fetch(ctx context.Context, uri string) error {
	if !remote(uri) || s.Cached(uri) {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create asset dir: %w", err)
	}

	if err := backoff.Retry(func() error {
		return s.download(ctx, uri)
	}, s.retryPolicy(ctx)); err != nil {
		return fmt.Errorf("fetch %s: %w", uri, err)
	}
	return nil
}

func (s *Store) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if s.RetryInterval > 0 {
		b.InitialInterval = s.RetryInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(s.Retries, 0))), ctx)
}

func (s *Store) download(ctx context.Context, uri string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}

	dst := s.Path(uri)
	tmp, err := os.CreateTemp(s.Dir, ".fetch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// FetchAll downloads uris with at most workers concurrent requests.
func (s *Store) FetchAll(ctx context.Context, uris []string, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, uri := range uris {
		uri := uri
		g.Go(func() error {
			return s.Fetch(ctx, uri)
		})
	}
	return g.Wait()
}

// Preload decodes still images so Image never touches the disk.
func (s *Store) Preload(uris ...string) error {
	for _, uri := range uris {
		if _, err := s.decode(uri); err != nil {
			return err
		}
	}
	return nil
}

// Image returns a preloaded or decodable still.
func (s *Store) Image(uri string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.images[uri]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}
	return s.decode(uri)
}

func (s *Store) decode(uri string) (image.Image, error) {
	p := s.Path(uri)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotCached, uri)
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	s.mu.Lock()
	s.images[uri] = img
	s.mu.Unlock()
	return img, nil
}

// Dimensions reads only the image header.
func (s *Store) Dimensions(uri string) (width, height int, err error) {
	f, err := os.Open(s.Path(uri))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
