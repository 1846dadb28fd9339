// Command gentone writes raw 48 kHz mono float32 MSK audio to stdout:
// a fixed-duration run of either the traffic-channel idle sync word or
// one caller-supplied 48-bit payload framed with its FCS, repeated. Useful
// for feeding a known-good signal to an SDR, a scope, or this module's
// own demodulator for a bench test.
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/softtsc/mpt1327modem/mpt1327"
)

func main() {
	var seconds = pflag.Float64P("seconds", "s", 1.0, "Duration to generate, in seconds.")
	var payloadHex = pflag.StringP("payload", "p", "", "48-bit payload (hex) to repeat, instead of the idle sync word.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: gentone [options] > out.raw")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var codeword uint64 = mpt1327.IdleWord
	if *payloadHex != "" {
		payload, err := parsePayload(*payloadHex)
		if err != nil {
			fmt.Fprintln(os.Stderr, "gentone:", err)
			os.Exit(1)
		}
		codeword = payload
	}

	totalSamples := int(*seconds * mpt1327.SampleRate)

	mod := mpt1327.NewModulator()
	next := func() uint64 { return codeword }

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	const blockSize = 4096
	buf := make([]float32, blockSize)
	remaining := totalSamples
	for remaining > 0 {
		n := blockSize
		if n > remaining {
			n = remaining
		}
		for i := range buf[:n] {
			buf[i] = 0
		}
		mod.Fill(buf[:n], next)

		if err := writeSamples(out, buf[:n]); err != nil {
			fmt.Fprintln(os.Stderr, "gentone:", err)
			os.Exit(1)
		}
		remaining -= n
	}
}

func writeSamples(w *bufio.Writer, buf []float32) error {
	var scratch [4]byte
	for _, s := range buf {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(s))
		if _, err := w.Write(scratch[:]); err != nil {
			return err
		}
	}
	return nil
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
	return mpt1327.FCSAdd(v), nil
}
