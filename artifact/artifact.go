// Package artifact persists generated images as tracked temp files and
// cleans them up on demand or at shutdown.
package artifact

import "time"

// TrackedArtifact is a file this process created and is responsible for
// eventually deleting. Once removed it must not be referenced again;
// double-delete is tolerated, not an error.
type TrackedArtifact struct {
	Path      string
	CreatedAt time.Time
}
