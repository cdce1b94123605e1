package lzw

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
)

type namedInput struct {
	name string
	data []byte
}

func testInputSet() []namedInput {
	rnd := rand.New(rand.NewSource(1))
	randomBytes := make([]byte, 4096)
	rnd.Read(randomBytes)

	return []namedInput{
		{"empty", nil},
		{"single-byte", []byte("A")},
		{"all-same-byte", bytes.Repeat([]byte("x"), 2000)},
		{"growth-pattern", []byte(strings.Repeat("AB", 40))},
		{"kwkwk-trigger", []byte("ababababab")},
		{"random", randomBytes},
		{"long-prose", []byte(strings.Repeat(
			"the quick brown fox jumps over the lazy dog. ", 200))},
	}
}

func roundTrip(t *testing.T, data []byte, opts EncodeOptions) []byte {
	t.Helper()
	var encoded bytes.Buffer
	if _, err := Encode(&encoded, bytes.NewReader(data), opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded bytes.Buffer
	if _, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", decoded.Len(), len(data))
	}
	return encoded.Bytes()
}

func TestRoundTripAcrossMaxBits(t *testing.T) {
	for _, in := range testInputSet() {
		for maxBits := MinBits; maxBits <= MaxBitsAbsolute; maxBits++ {
			t.Run(in.name+"/maxbits="+itoa(maxBits), func(t *testing.T) {
				roundTrip(t, in.data, EncodeOptions{MaxBits: maxBits})
			})
		}
	}
}

func TestRoundTripWithPruning(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			roundTrip(t, in.data, EncodeOptions{MaxBits: 10, Used: 2})
		})
	}
}

func TestRoundTripWithSidecarPreload(t *testing.T) {
	seed := []byte("the quick brown fox ")
	var dump bytes.Buffer
	if _, err := Encode(&bytes.Buffer{}, bytes.NewReader(seed), EncodeOptions{MaxBits: 14, DumpOut: &dump}); err != nil {
		t.Fatalf("seeding Encode: %v", err)
	}

	data := []byte("the quick brown fox jumps over the lazy dog")
	var encoded bytes.Buffer
	stats, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{
		MaxBits: 14,
		DumpIn:  bytes.NewReader(dump.Bytes()),
		Name:    "seed.dump",
	})
	if err != nil {
		t.Fatalf("Encode with preload: %v", err)
	}
	if stats.FinalEntries <= asciiEntries {
		t.Fatalf("expected preloaded+grown table, got %d entries", stats.FinalEntries)
	}

	var decoded bytes.Buffer
	hdr, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{
		DumpIn: bytes.NewReader(dump.Bytes()),
	})
	if err != nil {
		t.Fatalf("Decode with explicit preload: %v", err)
	}
	if hdr.Name != "seed.dump" {
		t.Fatalf("hdr.Name = %q, want %q", hdr.Name, "seed.dump")
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip with sidecar mismatch")
	}
}

func TestRoundTripWithSidecarAutoLoadFromHeader(t *testing.T) {
	seed := []byte("hello world hello world")
	var dump bytes.Buffer
	if _, err := Encode(&bytes.Buffer{}, bytes.NewReader(seed), EncodeOptions{MaxBits: 12, DumpOut: &dump}); err != nil {
		t.Fatalf("seeding Encode: %v", err)
	}
	dumpBytes := dump.Bytes()

	data := []byte("hello world again and again")
	var encoded bytes.Buffer
	if _, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{
		MaxBits: 12,
		DumpIn:  bytes.NewReader(dumpBytes),
		Name:    "auto.dump",
	}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	opened := false
	var decoded bytes.Buffer
	_, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{
		OpenDump: func(name string) (io.Reader, error) {
			opened = true
			if name != "auto.dump" {
				t.Fatalf("OpenDump called with %q, want %q", name, "auto.dump")
			}
			return bytes.NewReader(dumpBytes), nil
		},
	})
	if err != nil {
		t.Fatalf("Decode with auto-load: %v", err)
	}
	if !opened {
		t.Fatalf("OpenDump was never called")
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip with auto-loaded sidecar mismatch")
	}
}

func TestWidthMonotonicWithinEpoch(t *testing.T) {
	data := []byte(strings.Repeat("abcdefgh", 300))
	var encoded bytes.Buffer
	if _, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{MaxBits: 14}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// A successful round trip through the shared bit width schedule already
	// exercises monotonicity: any premature widening or narrowing desyncs
	// the reader from the writer and corrupts every subsequent code.
	roundTrip(t, data, EncodeOptions{MaxBits: 14})
}

func TestTableStopsGrowingAtSmallMaxBits(t *testing.T) {
	// At max_bits=9 the table simply stops growing once it reaches 511
	// entries; that is expected steady-state behavior, not an overflow, so
	// Stats.Overflowed stays false (it is reserved for the absolute ceiling).
	data := []byte(strings.Repeat("abcdefghij", 200))
	var encoded bytes.Buffer
	stats, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{MaxBits: MinBits})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if stats.FinalEntries > 1<<MinBits {
		t.Fatalf("FinalEntries = %d, want <= %d at max_bits=9", stats.FinalEntries, 1<<MinBits)
	}
	if stats.Overflowed {
		t.Fatalf("Overflowed = true, want false below MaxBitsAbsolute")
	}
	var decoded bytes.Buffer
	if _, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip mismatch at capped max_bits")
	}
}

func TestOverflowAtAbsoluteCeiling(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	data := make([]byte, 3<<20)
	rnd.Read(data)
	var encoded bytes.Buffer
	stats, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{MaxBits: MaxBitsAbsolute})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !stats.Overflowed {
		t.Fatalf("expected Overflowed=true once the dictionary hits the absolute ceiling")
	}
	var decoded bytes.Buffer
	if _, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip mismatch after overflow")
	}
}

func TestPruningBoundsTableSize(t *testing.T) {
	data := []byte(strings.Repeat(
		"the quick brown fox jumps over the lazy dog. ", 200))
	var encoded bytes.Buffer
	stats, err := Encode(&encoded, bytes.NewReader(data), EncodeOptions{MaxBits: 10, Used: 2})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if stats.Prunes == 0 {
		t.Fatalf("expected at least one prune over ~%d bytes at max_bits=10", len(data))
	}
	var decoded bytes.Buffer
	if _, _, err := Decode(&decoded, bytes.NewReader(encoded.Bytes()), DecodeOptions{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), data) {
		t.Fatalf("round trip mismatch after pruning")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
