package lzw

import (
	"fmt"
	"io"
)

// EncodeOptions configures Encode. DumpIn/DumpOut, if set, are owned and
// closed by the caller — Encode never opens or closes files itself, mirror
// ing the CLI's -i/-o sidecar flags being "deliberately out of scope" for
// the core codec.
type EncodeOptions struct {
	// MaxBits caps code width, clamped to [MinBits, MaxBitsAbsolute].
	// Zero means DefaultMaxBits.
	MaxBits int
	// Used enables usage-based pruning with this threshold when nonzero;
	// zero disables pruning.
	Used int
	// DumpIn, if non-nil, preloads the dictionary (see NewTable).
	DumpIn io.Reader
	// DumpOut, if non-nil, receives a sidecar dump after the stream ends.
	DumpOut io.Writer
	// Name is echoed into the stream header so Decode can auto-load the
	// same sidecar dictionary; set this to the -i path, if any.
	Name string
}

// DefaultEncodeOptions returns options for encoding with dictionary growth
// up to the default max-bits ceiling and no pruning.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{MaxBits: DefaultMaxBits}
}

// validate clamps MaxBits and rejects a negative pruning threshold.
func (o *EncodeOptions) validate() error {
	if o.MaxBits == 0 {
		o.MaxBits = DefaultMaxBits
	}
	if o.MaxBits < MinBits {
		o.MaxBits = MinBits
	}
	if o.MaxBits > MaxBitsAbsolute {
		o.MaxBits = MaxBitsAbsolute
	}
	if o.Used < 0 {
		return fmt.Errorf("%w: -p threshold %d must be >= 0", ErrUsage, o.Used)
	}
	return nil
}

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// DumpIn, if non-nil, preloads the dictionary and overrides any
	// sidecar name carried in the stream header.
	DumpIn io.Reader
	// DumpOut, if non-nil, receives a sidecar dump after the stream ends.
	DumpOut io.Writer
	// OpenDump, if non-nil, is used to auto-load the header's embedded
	// sidecar name when DumpIn is not already set. It is the file-opening
	// collaborator Decode itself deliberately does not own; the caller
	// (typically cmd/decode) supplies an os.Open-backed implementation.
	OpenDump func(name string) (io.Reader, error)
}
