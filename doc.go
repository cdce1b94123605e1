// Package lzw implements a variable-width LZW (Lempel-Ziv-Welch) codec with
// an adaptive string table, bit-width promotion, and optional usage-based
// pruning.
//
// # Overview
//
// Unlike the fixed 12-bit tables of classic LZW variants (compress, GIF),
// this codec grows the code width as the dictionary fills, up to a
// configurable ceiling (MaxBits, 9-20 bits). Once the ceiling is reached the
// dictionary normally freezes; enabling usage pruning instead rebuilds the
// table from its most-used entries, letting the codec keep adapting to
// later input at a narrower width.
//
// # Basic Usage
//
//	stats, err := lzw.Encode(w, r, lzw.EncodeOptions{MaxBits: 12})
//	hdr, stats, err := lzw.Decode(w, r, lzw.DecodeOptions{})
//
// Encode writes a stream prologue (see Header) followed by a bit-packed code
// stream; Decode parses the prologue and reconstructs the original bytes.
//
// # Sidecar Dictionaries
//
// A trained table can be written out with Table.Dump and preloaded on a
// later run via EncodeOptions.DumpIn / DecodeOptions.DumpIn / the dump
// reader passed to NewTable, letting
// independent streams share a warm dictionary. See the cmd/encode and
// cmd/decode programs for the -i/-o/-p/-m command-line flags that drive this.
//
// # Performance Characteristics
//
// Table lookups are O(1) expected (open-addressed hash table keyed by
// (prefix, char)); encode and decode are single pass over the input with no
// backtracking. Pruning is O(numEntries) and happens only when the
// configured usage threshold is nonzero and the code width would otherwise
// overflow MaxBits.
package lzw
