package asset

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func pngServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, img)
	}))
}

func TestFetchAndDecode(t *testing.T) {
	var hits int32
	srv := pngServer(t, &hits)
	defer srv.Close()

	s := NewStore(t.TempDir())
	uri := srv.URL + "/superlinks/shot.png"

	if _, err := s.Image(uri); !errors.Is(err, ErrNotCached) {
		t.Errorf("before fetch: got %v, want ErrNotCached", err)
	}
	if err := s.FetchAll(context.Background(), []string{uri, uri}, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(s.Path(uri), "_shot.png") {
		t.Errorf("cache path %s", s.Path(uri))
	}

	if err := s.Fetch(context.Background(), uri); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n > 2 {
		t.Errorf("%d downloads, cached file should be reused", n)
	}

	if err := s.Preload(uri); err != nil {
		t.Fatal(err)
	}
	img, err := s.Image(uri)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds %v", img.Bounds())
	}
	if w, h, err := s.Dimensions(uri); err != nil || w != 4 || h != 3 {
		t.Errorf("dimensions %dx%d %v", w, h, err)
	}
}

func TestFetchFailsAfterRetries(t *testing.T) {
	var hits int32
	srv := pngServer(t, &hits)
	defer srv.Close()

	s := NewStore(t.TempDir())
	s.Retries = 0
	if err := s.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected an error for a 404")
	}
	entries, _ := os.ReadDir(s.Dir)
	if len(entries) != 0 {
		t.Errorf("failed fetch left %d files behind", len(entries))
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int32
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		png.Encode(w, img)
	}))
	defer srv.Close()

	s := NewStore(t.TempDir())
	s.RetryInterval = time.Millisecond
	uri := srv.URL + "/flaky.png"
	if err := s.Fetch(context.Background(), uri); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("%d requests, want 3", n)
	}
	if !s.Cached(uri) {
		t.Error("file not cached after a successful retry")
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	srv := pngServer(t, &hits)
	defer srv.Close()

	s := NewStore(t.TempDir())
	s.RetryInterval = time.Millisecond
	if err := s.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected an error for a 404")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("404 requested %d times, want 1", n)
	}
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewStore(t.TempDir())
	s.Retries = 2
	s.RetryInterval = time.Millisecond
	if err := s.Fetch(context.Background(), srv.URL+"/down.png"); err == nil {
		t.Fatal("expected an error")
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("%d requests, want 3", n)
	}
}

func TestLocalPathsPassThrough(t *testing.T) {
	s := NewStore("cache")
	if got := s.Path("file:///tmp/a.png"); got != "/tmp/a.png" {
		t.Errorf("file uri: %s", got)
	}
	if got := s.Path("assets/a.png"); got != "assets/a.png" {
		t.Errorf("plain path: %s", got)
	}
	if err := s.Fetch(context.Background(), "assets/a.png"); err != nil {
		t.Errorf("local fetch: %v", err)
	}
}
