// Package exerr defines the exhaustive error taxonomy surfaced by the
// exclusion index and its supporting persistence layer.
package exerr

import "errors"

var (
	// ErrInvalidInterval is returned when an interval's bounds are not
	// ordered after null substitution, or when an insert is attempted
	// with an empty label.
	ErrInvalidInterval = errors.New("exclusionms: invalid interval")

	// ErrUnknownHandle is returned when a remove-by-handle target is not
	// present in the index.
	ErrUnknownHandle = errors.New("exclusionms: unknown handle")

	// ErrUnknownSnapshot is returned when load/delete targets a snapshot
	// name that does not exist on disk.
	ErrUnknownSnapshot = errors.New("exclusionms: unknown snapshot")

	// ErrCorruptSnapshot is returned when a snapshot's bytes cannot be
	// parsed, fail their checksum, or declare an unsupported format
	// version.
	ErrCorruptSnapshot = errors.New("exclusionms: corrupt snapshot")

	// ErrConflict is returned by non-blocking APIs when a write is
	// attempted while a deserialize already holds the exclusive lock.
	// The default (blocking) API never returns it.
	ErrConflict = errors.New("exclusionms: conflicting write in progress")

	// ErrBoundsOverflow is returned when a numeric bound cannot
	// round-trip through the snapshot codec.
	ErrBoundsOverflow = errors.New("exclusionms: bound overflows codec representation")
)
