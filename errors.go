package lzw

import "errors"

// Sentinel errors for encode, decode, and their command-line wrappers.
var (
	// ErrUsage is returned when an option is out of range or otherwise
	// malformed (e.g. a negative usage-pruning threshold).
	ErrUsage = errors.New("lzw: usage error")

	// ErrCorruptStream is returned for an invalid header (missing fields,
	// max_bits out of [9,20]) or a decoded wire code that references a
	// non-existent entry. Decode aborts on this error with no partial
	// replay.
	ErrCorruptStream = errors.New("lzw: corrupt stream")

	// ErrOverflow marks that the table reached its absolute maximum
	// capacity (1<<MaxBitsAbsolute - 1 entries). Encode and decode keep
	// running without further inserts; callers can use errors.Is to detect
	// it in Stats-adjacent logging, it is never returned as a hard error.
	ErrOverflow = errors.New("lzw: dictionary at maximum capacity")
)
