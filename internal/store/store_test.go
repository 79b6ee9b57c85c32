package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	words := timeline.Timeline{
		{Text: " Hallo", Start: 0.0, End: 0.5},
		{Text: " wereld", Start: 0.5, End: 1.0},
	}

	if err := s.Put("abc123", "/clips/intro.mp4", "nl", words); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("timeline not found after Put")
	}
	if len(got) != 2 || got[0] != words[0] || got[1] != words[1] {
		t.Errorf("got %+v, want %+v", got, words)
	}
}

func TestGetUnknownHash(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("found a timeline for an unknown hash")
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s := openTestStore(t)

	first := timeline.Timeline{{Text: " een", Start: 0, End: 0.3}}
	second := timeline.Timeline{{Text: " twee", Start: 0, End: 0.4}}

	if err := s.Put("h", "/a.mp4", "nl", first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put("h", "/a.mp4", "nl", second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, ok, err := s.Get("h")
	if err != nil || !ok {
		t.Fatalf("Get failed: %v, ok=%v", err, ok)
	}
	if got[0].Text != " twee" {
		t.Errorf("got %+v, want replacement", got)
	}
}

func TestInvalidate(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("h", "/a.mp4", "nl", timeline.Timeline{{Text: " x", Start: 0, End: 1}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Invalidate("h"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	if _, ok, _ := s.Get("h"); ok {
		t.Fatal("timeline survived invalidation")
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.bin")
	if err := os.WriteFile(path, []byte("same content"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}

	if err := os.WriteFile(path, []byte("different content"), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if h3 == h1 {
		t.Error("different content produced the same hash")
	}
}
