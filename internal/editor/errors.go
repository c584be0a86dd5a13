package editor

import "errors"

// Every mutation resolves its coordinates before touching the tree and
// returns one of these instead of silently skipping the edit. The HTTP layer
// maps them onto 404/400 responses; the drag handler treats them as a stale
// drop and discards the event.
var (
	ErrBlockNotFound    = errors.New("block index out of range")
	ErrExerciseNotFound = errors.New("no exercise at the given coordinates")
	ErrSupersetNotFound = errors.New("superset index out of range")
	ErrSupersetIndexGap = errors.New("target superset index would leave a gap")
	ErrUnknownStructure = errors.New("unknown block structure kind")
)
