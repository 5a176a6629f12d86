package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Policy names accepted in configuration.
const (
	PolicyTracked   = "tracked"
	PolicyDirectory = "directory"
)

// ErrUnknownPolicy is returned for a cleanup policy name that is neither
// "tracked" nor "directory".
var ErrUnknownPolicy = errors.New("unknown cleanup policy")

// Summary reports the outcome of a cleanup pass. Cleanup never fails as a
// whole; per-file faults are counted and logged.
type Summary struct {
	Removed     int
	AlreadyGone int
	Failed      int
}

// String renders the summary as a short human-readable sentence.
func (s Summary) String() string {
	if s.Removed == 0 && s.AlreadyGone == 0 && s.Failed == 0 {
		return "no temp files to remove"
	}

	parts := []string{fmt.Sprintf("removed %d temp file(s)", s.Removed)}
	if s.AlreadyGone > 0 {
		parts = append(parts, fmt.Sprintf("%d already gone", s.AlreadyGone))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	return strings.Join(parts, ", ")
}

func (s *Summary) add(other Summary) {
	s.Removed += other.Removed
	s.AlreadyGone += other.AlreadyGone
	s.Failed += other.Failed
}

// CleanupPolicy decides which files a cleanup pass deletes.
type CleanupPolicy interface {
	// CleanupAll deletes the files the policy covers and reports a summary.
	// It never returns an error; faults are absorbed into the summary.
	CleanupAll() Summary
}

// NewPolicy builds a CleanupPolicy for a configured policy name.
func NewPolicy(name string, store *Store, logger *slog.Logger) (CleanupPolicy, error) {
	switch name {
	case PolicyTracked, "":
		return &TrackedPolicy{Store: store}, nil
	case PolicyDirectory:
		return &DirectoryPolicy{Dir: store.Dir(), Logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
}

// TrackedPolicy deletes only files this process created, draining the
// store's registry. Used for explicit "clear" actions and process shutdown.
type TrackedPolicy struct {
	Store *Store
}

func (p *TrackedPolicy) CleanupAll() Summary {
	var summary Summary
	for _, art := range p.Store.drain() {
		summary.add(removeFile(art.Path, p.Store.logger))
	}

	p.Store.logger.Info("tracked cleanup finished", "summary", summary.String())
	return summary
}

// DirectoryPolicy deletes every regular file currently in a fixed directory,
// regardless of which process created it.
type DirectoryPolicy struct {
	Dir    string
	Logger *slog.Logger
}

func (p *DirectoryPolicy) CleanupAll() Summary {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var summary Summary
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return summary
		}
		logger.Error("listing temp directory failed", "dir", p.Dir, "error", err.Error())
		summary.Failed++
		return summary
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		summary.add(removeFile(filepath.Join(p.Dir, entry.Name()), logger))
	}

	logger.Info("directory cleanup finished", "dir", p.Dir, "summary", summary.String())
	return summary
}

// removeFile deletes one file. A missing file counts as already gone; any
// other fault is logged and counted, never propagated.
func removeFile(path string, logger *slog.Logger) Summary {
	switch err := os.Remove(path); {
	case err == nil:
		return Summary{Removed: 1}
	case errors.Is(err, fs.ErrNotExist):
		return Summary{AlreadyGone: 1}
	default:
		logger.Warn("failed to remove temp file", "path", path, "error", err.Error())
		return Summary{Failed: 1}
	}
}
