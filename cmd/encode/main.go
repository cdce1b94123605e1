// Command encode reads bytes from stdin and writes a variable-width LZW
// code stream to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	lzw "github.com/axiomhq/vlzw"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		maxBits int
		used    int
		dumpOut string
		dumpIn  string
	)

	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.IntVar(&maxBits, "m", lzw.DefaultMaxBits, "max code width in bits, clamped to [9,20]")
	fs.IntVar(&used, "p", 0, "enable usage pruning with this threshold (0 disables)")
	fs.StringVar(&dumpOut, "o", "", "write sidecar dictionary dump to this file after the stream ends")
	fs.StringVar(&dumpIn, "i", "", "preload the dictionary from this sidecar file; its name is echoed in the stream header")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: encode [-m MAXBITS] [-o NAME] [-i NAME] [-p USED]\n\n")
		fmt.Fprintf(os.Stderr, "Reads bytes from stdin and writes a variable-width LZW code stream to stdout.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "encode: unexpected positional arguments")
		fs.Usage()
		return 1
	}

	opts := lzw.EncodeOptions{MaxBits: maxBits, Used: used, Name: dumpIn}

	if dumpIn != "" {
		f, err := os.Open(dumpIn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode: opening dump input %s: %v\n", dumpIn, err)
			return 2
		}
		defer f.Close()
		opts.DumpIn = f
	}

	if dumpOut != "" {
		f, err := os.Create(dumpOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode: creating dump output %s: %v\n", dumpOut, err)
			return 2
		}
		defer f.Close()
		opts.DumpOut = f
	}

	stats, err := lzw.Encode(os.Stdout, os.Stdin, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		if errors.Is(err, lzw.ErrUsage) {
			return 1
		}
		return 2
	}
	if stats.Overflowed {
		log.Printf("%v (%d entries); continuing without further inserts", fmt.Errorf("encode: %w", lzw.ErrOverflow), stats.FinalEntries)
	}
	return 0
}
