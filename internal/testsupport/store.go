package testsupport

import (
	"path/filepath"
	"testing"

	"quickreviewer/internal/store"
)

// NewStore opens a disposable review store in a per-test temp directory.
func NewStore(t testing.TB) *store.Store {
	t.Helper()

	s, err := store.OpenPath(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close test store: %v", err)
		}
	})
	return s
}
