package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store writes generated images to a directory and records every file it
// creates in an in-memory registry. Appends are mutex-guarded; concurrent
// saves are safe.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	tracked []TrackedArtifact
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the clock used for artifact timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "gemcanvas")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}

	s := &Store{
		dir:    dir,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory artifacts are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes image data to a new uniquely named file and registers it as a
// tracked artifact. Existing files are never overwritten.
func (s *Store) Save(data []byte, mimeType string) (string, error) {
	name := "gen_" + uuid.NewString() + "." + ExtensionFromMIME(mimeType)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating artifact file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing artifact file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing artifact file: %w", err)
	}

	s.mu.Lock()
	s.tracked = append(s.tracked, TrackedArtifact{Path: path, CreatedAt: s.now()})
	s.mu.Unlock()

	s.logger.Debug("artifact saved",
		"path", path,
		"size", len(data),
		"mime_type", mimeType,
	)

	return path, nil
}

// Tracked returns a copy of the registry.
func (s *Store) Tracked() []TrackedArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TrackedArtifact, len(s.tracked))
	copy(out, s.tracked)
	return out
}

// drain atomically empties the registry and returns what it held.
func (s *Store) drain() []TrackedArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	drained := s.tracked
	s.tracked = nil
	return drained
}

// ExtensionFromMIME returns a file extension for common image MIME types.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
