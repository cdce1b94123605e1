package lzw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/axiomhq/vlzw/internal/bitio"
)

// Decode parses a Header from r, reconstructs the original bytes to w, and
// returns the parsed header plus run statistics. If opts.DumpIn is nil and
// the header carries a non-empty sidecar name, opts.OpenDump (if set) is
// used to auto-load it, mirroring the CLI's -i auto-load behavior.
func Decode(w io.Writer, r io.Reader, opts DecodeOptions) (Header, Stats, error) {
	var stats Stats
	br := bufio.NewReader(r)

	hdr, err := ReadHeader(br)
	if err != nil {
		return Header{}, stats, err
	}

	dumpIn := opts.DumpIn
	if dumpIn == nil && hdr.Name != "" && opts.OpenDump != nil {
		d, err := opts.OpenDump(hdr.Name)
		if err != nil {
			return hdr, stats, err
		}
		if c, ok := d.(io.Closer); ok {
			defer c.Close()
		}
		dumpIn = d
	}

	table, err := NewTable(dumpIn)
	if err != nil {
		return hdr, stats, err
	}

	dec := &decoderState{
		table:   table,
		r:       bitio.NewReader(br),
		maxBits: hdr.MaxBits,
		used:    uint32(hdr.Used),
	}

	bw := bufio.NewWriter(w)
	runErr := dec.run(bw, &stats)
	if flushErr := bw.Flush(); runErr == nil {
		runErr = flushErr
	}

	stats.FinalEntries = dec.table.NumEntries()
	stats.Prunes = dec.prunes
	stats.Overflowed = dec.overflowed

	if runErr == nil && opts.DumpOut != nil {
		runErr = dec.table.Dump(opts.DumpOut)
	}
	return hdr, stats, runErr
}

// decoderState runs the inverse state machine of spec.md §4.4, including the
// KwKwK case and deferred character resolution.
type decoderState struct {
	table      *Table
	r          *bitio.Reader
	maxBits    int
	used       uint32
	prunes     int
	overflowed bool

	// last is the code of the most recently inserted deferred entry still
	// awaiting resolution, or CodeEmpty if none is pending (including right
	// after a prune, per the symmetric reset discipline documented in
	// DESIGN.md).
	last Code
	// pendingFinalK is the first byte of the previous word, used to resolve
	// the KwKwK case before this word's own first byte is known.
	pendingFinalK int32
}

func (d *decoderState) fits() bool {
	return bitsPerCode(int(d.table.numEntries())+1) <= uint(d.maxBits)
}

func (d *decoderState) run(w *bufio.Writer, stats *Stats) error {
	d.last = CodeEmpty
	d.pendingFinalK = CharUnknown
	st := newStack()

	for {
		numEnt := d.table.numEntries()
		width := bitsPerCode(int(numEnt))
		wire, err := d.r.ReadBits(width)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		code := Code(wire) + 1
		newCode := code
		if code > numEnt+1 || (code == numEnt+1 && d.last == CodeEmpty) {
			return fmt.Errorf("%w: code %d invalid (have %d entries)", ErrCorruptStream, code, numEnt)
		}

		if d.table.lookupChar(code) == CharUnknown {
			// KwKwK: the encoder emitted a code for the entry it had just
			// inserted, before we could see it. Its trailing byte is known
			// to be the previous word's first byte.
			d.table.incrementUsage(code)
			st.push(byte(d.pendingFinalK))
			code = d.table.lookupPref(code)
		}
		for p := d.table.lookupPref(code); p != CodeEmpty; p = d.table.lookupPref(code) {
			d.table.incrementUsage(code)
			st.push(byte(d.table.lookupChar(code)))
			code = p
		}
		d.table.incrementUsage(code)
		finalK := d.table.lookupChar(code)

		if err := w.WriteByte(byte(finalK)); err != nil {
			return err
		}
		stats.BytesOut++
		for !st.empty() {
			if err := w.WriteByte(st.pop()); err != nil {
				return err
			}
			stats.BytesOut++
		}

		if d.last != CodeEmpty && d.table.lookupChar(d.last) == CharUnknown {
			d.table.replaceLastChar(finalK, d.last)
		}

		d.last = CodeEmpty
		if d.fits() {
			inserted := d.table.insert(newCode, CharUnknown)
			pruned := false
			if d.used > 0 && !d.fits() {
				nt, err := d.table.prune(d.used)
				if err != nil {
					return err
				}
				d.table = nt
				d.prunes++
				pruned = true
			}
			if !pruned {
				d.last = inserted
			}
		} else if d.maxBits == MaxBitsAbsolute {
			d.overflowed = true
		}

		d.pendingFinalK = finalK
		stats.CodesRead++
	}
	return nil
}
