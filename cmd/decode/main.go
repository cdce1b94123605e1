// Command decode reads a variable-width LZW code stream from stdin and
// writes the reconstructed bytes to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	lzw "github.com/axiomhq/vlzw"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var dumpOut string

	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.StringVar(&dumpOut, "o", "", "write sidecar dictionary dump to this file after the stream ends")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: decode [-o NAME]\n\n")
		fmt.Fprintf(os.Stderr, "Reads a variable-width LZW code stream from stdin and writes the reconstructed bytes to stdout.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "decode: unexpected positional arguments")
		fs.Usage()
		return 1
	}

	opts := lzw.DecodeOptions{
		OpenDump: func(name string) (io.Reader, error) { return os.Open(name) },
	}

	if dumpOut != "" {
		f, err := os.Create(dumpOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode: creating dump output %s: %v\n", dumpOut, err)
			return 2
		}
		defer f.Close()
		opts.DumpOut = f
	}

	_, stats, err := lzw.Decode(os.Stdout, os.Stdin, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		if errors.Is(err, lzw.ErrUsage) {
			return 1
		}
		return 2
	}
	if stats.Overflowed {
		log.Printf("%v (%d entries); continuing without further inserts", fmt.Errorf("decode: %w", lzw.ErrOverflow), stats.FinalEntries)
	}
	return 0
}
