package lzw

import (
	"bufio"
	"io"

	"github.com/axiomhq/vlzw/internal/bitio"
)

// Stats summarizes one Encode or Decode run, beyond what spec.md's protocol
// requires but convenient for a CLI's verbose/-version-style reporting.
type Stats struct {
	BytesIn      int64
	BytesOut     int64
	CodesEmitted int64
	CodesRead    int64
	FinalEntries int
	Prunes       int
	// Overflowed is set if the dictionary reached its absolute maximum
	// capacity (MaxBitsAbsolute) and further inserts were skipped.
	Overflowed bool
}

// Encode reads r, writes a header (see Header) followed by a variable-width
// LZW code stream to w, and returns run statistics. opts.DumpIn, if set,
// preloads the dictionary before the first byte is read; opts.DumpOut, if
// set, receives the final dictionary after the stream ends.
func Encode(w io.Writer, r io.Reader, opts EncodeOptions) (Stats, error) {
	var stats Stats
	if err := opts.validate(); err != nil {
		return stats, err
	}

	table, err := NewTable(opts.DumpIn)
	if err != nil {
		return stats, err
	}

	bw := bufio.NewWriter(w)
	hdr := Header{MaxBits: opts.MaxBits, Used: opts.Used, Name: opts.Name}
	if err := WriteHeader(bw, hdr); err != nil {
		return stats, err
	}

	enc := &encoderState{
		table:   table,
		w:       bitio.NewWriter(bw),
		maxBits: opts.MaxBits,
		used:    uint32(opts.Used),
	}
	if err := enc.run(r, &stats); err != nil {
		return stats, err
	}
	if err := enc.w.Flush(); err != nil {
		return stats, err
	}
	if err := bw.Flush(); err != nil {
		return stats, err
	}

	stats.FinalEntries = enc.table.NumEntries()
	stats.Prunes = enc.prunes
	stats.Overflowed = enc.overflowed

	if opts.DumpOut != nil {
		if err := enc.table.Dump(opts.DumpOut); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// encoderState runs the greedy longest-match state machine of spec.md §4.3.
type encoderState struct {
	table      *Table
	w          *bitio.Writer
	maxBits    int
	used       uint32
	prunes     int
	overflowed bool
}

// fits reports whether one more entry still fits within maxBits.
func (e *encoderState) fits() bool {
	return bitsPerCode(int(e.table.numEntries())+1) <= uint(e.maxBits)
}

func (e *encoderState) emit(code Code) error {
	width := bitsPerCode(int(e.table.numEntries()))
	return e.w.WriteBits(width, uint32(code-1))
}

func (e *encoderState) run(r io.Reader, stats *Stats) error {
	br := bufio.NewReader(r)
	current := CodeEmpty

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		stats.BytesIn++
		k := int32(b)

		if t := e.table.lookupCode(current, k); t != CodeNotFound {
			current = t
		} else {
			if err := e.emit(current); err != nil {
				return err
			}
			stats.CodesEmitted++

			if e.fits() {
				e.table.insert(current, k)
				if e.used > 0 && !e.fits() {
					nt, err := e.table.prune(e.used)
					if err != nil {
						return err
					}
					e.table = nt
					e.prunes++
				}
			} else if e.maxBits == MaxBitsAbsolute {
				e.overflowed = true
			}
			current = e.table.lookupCode(CodeEmpty, k)
		}
		e.table.incrementUsage(current)
	}

	if current != CodeEmpty {
		if err := e.emit(current); err != nil {
			return err
		}
		stats.CodesEmitted++
	}
	return nil
}
