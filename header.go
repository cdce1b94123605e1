package lzw

import (
	"fmt"
	"io"
	"strconv"
)

// Header is the ASCII stream prologue written by Encode and consumed by
// Decode: "<max_bits>:<used>:<name_len>:<name>", with exactly name_len bytes
// following the third colon and no terminator. The bit-packed code stream
// begins immediately after.
type Header struct {
	MaxBits int
	Used    int
	// Name is the sidecar dictionary file name echoed from -i, or "" if
	// none was used. A length of 0 means no name follows.
	Name string
}

// WriteHeader writes h's prologue to w.
func WriteHeader(w io.Writer, h Header) error {
	_, err := fmt.Fprintf(w, "%d:%d:%d:%s", h.MaxBits, h.Used, len(h.Name), h.Name)
	return err
}

// ReadHeader parses a prologue from r, validating max_bits is in [9,20].
// r must be (or wrap) a byte-at-a-time reader so that, once the header's
// final byte is consumed, the caller can hand the same reader to a bitio
// reader with no bytes of the code stream lost to buffering. Callers
// typically pass a *bufio.Reader and keep using it afterward.
func ReadHeader(r io.ByteReader) (Header, error) {
	maxBits, err := readDecimalField(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading max_bits: %v", ErrCorruptStream, err)
	}
	if maxBits < MinBits || maxBits > MaxBitsAbsolute {
		return Header{}, fmt.Errorf("%w: max_bits %d out of range [%d,%d]", ErrCorruptStream, maxBits, MinBits, MaxBitsAbsolute)
	}
	used, err := readDecimalField(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading used: %v", ErrCorruptStream, err)
	}
	if used < 0 {
		return Header{}, fmt.Errorf("%w: used %d is negative", ErrCorruptStream, used)
	}
	nameLen, err := readDecimalField(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: reading name_len: %v", ErrCorruptStream, err)
	}
	if nameLen < 0 {
		return Header{}, fmt.Errorf("%w: name_len %d is negative", ErrCorruptStream, nameLen)
	}
	name := make([]byte, nameLen)
	for i := range name {
		b, err := r.ReadByte()
		if err != nil {
			return Header{}, fmt.Errorf("%w: reading name: %v", ErrCorruptStream, err)
		}
		name[i] = b
	}
	return Header{MaxBits: maxBits, Used: used, Name: string(name)}, nil
}

// readDecimalField reads ASCII digits up to (and consuming) the next ':'
// delimiter and parses them as a decimal integer.
func readDecimalField(r io.ByteReader) (int, error) {
	var digits []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ':' {
			break
		}
		digits = append(digits, b)
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, err
	}
	return n, nil
}
