// Command fcscalc computes the MPT1327 frame check sequence for a
// 48-bit payload given on the command line, for bench-testing codewords
// against this implementation without wiring up a full channel.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/softtsc/mpt1327modem/mpt1327"
)

func main() {
	var help = pflag.BoolP("help", "h", false, "Display help text.")
	var appendFCS = pflag.BoolP("append", "a", false, "Print the full 64-bit codeword (payload<<16 | fcs) instead of just the fcs.")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: fcscalc [options] <48-bit-payload-hex>")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	payload, err := parsePayload(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "fcscalc:", err)
		os.Exit(1)
	}

	if *appendFCS {
		fmt.Printf("0x%016X\n", mpt1327.FCSAdd(payload))
		return
	}
	fmt.Printf("0x%04X\n", mpt1327.FCS(payload))
}

func parsePayload(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex payload %q: %w", s, err)
	}
	if v > 0xFFFFFFFFFFFF {
		return 0, fmt.Errorf("payload %q exceeds 48 bits", s)
	}
	return v, nil
}
