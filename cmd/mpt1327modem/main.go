// Command mpt1327modem runs the MPT1327 software modem against a real
// sound device, optionally keying a PTT GPIO line, parking a
// Hamlib-controlled radio on its control-channel frequency at startup,
// and announcing its control surface over mDNS/DNS-SD.
//
// The upstream trunking layer (channel assignment, call setup, slot
// scheduling) is out of scope here; this binary exposes the channel's
// recv/txcv callbacks over nothing more than stdin/stdout framed as hex
// codewords per line, which is enough to drive or observe the modem
// from an external process during development.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/softtsc/mpt1327modem/config"
	"github.com/softtsc/mpt1327modem/discovery"
	"github.com/softtsc/mpt1327modem/mpt1327"
	"github.com/softtsc/mpt1327modem/ptt"
	"github.com/softtsc/mpt1327modem/rig"
	"github.com/softtsc/mpt1327modem/soundio"
)

func main() {
	var configFile = pflag.StringP("config-file", "c", "", "YAML configuration file. If unset, built-in defaults are used.")
	var verbose = pflag.BoolP("verbose", "v", false, "Enable debug-level logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: mpt1327modem [options]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Defaults()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatal("loading configuration", "err", err)
		}
		cfg = loaded
	}

	txq := newLineTxQueue()

	ch := mpt1327.NewChannel(cfg.ToChannelConfig(), func(cw uint64) {
		fmt.Printf("%014X\n", cw)
	}, txq.next)
	ch.SetBridge(cfg.Channel.BridgeEnabled)

	var keyer *ptt.Keyer
	if cfg.PTT.Device != "" {
		k, err := ptt.Open(cfg.PTT.Device, cfg.PTT.Offset, cfg.PTT.ActiveHigh)
		if err != nil {
			log.Fatal("opening PTT line", "err", err)
		}
		defer k.Close()
		keyer = k
	}
	txq.onTransmit = func(active bool) {
		if keyer == nil {
			return
		}
		if err := keyer.Set(active); err != nil {
			log.Error("keying PTT", "err", err)
		}
	}

	if cfg.Rig.ModelID != 0 {
		r, err := rig.Open(cfg.Rig.ModelID, cfg.Rig.Port, cfg.Rig.FreqHz)
		if err != nil {
			log.Fatal("opening rig", "err", err)
		}
		defer r.Close()
		log.Info("rig parked", "model", cfg.Rig.ModelID, "freq_hz", cfg.Rig.FreqHz)
	}

	dev, err := soundio.Open(ch, cfg.Audio.FramesPerBuffer)
	if err != nil {
		log.Fatal("opening audio device", "err", err)
	}
	defer dev.Close()

	if cfg.DNSSD.Name != "" {
		announcer, err := discovery.Announce(cfg.DNSSD.Name, cfg.DNSSD.Port)
		if err != nil {
			log.Error("starting mDNS announcement", "err", err)
		} else {
			defer announcer.Stop()
		}
	}

	ch.Start()
	defer ch.Stop()

	if err := dev.Activate(); err != nil {
		log.Fatal("activating audio stream", "err", err)
	}
	defer dev.Deactivate()

	log.Info("mpt1327modem running, reading codewords from stdin")
	readStdinCodewords(txq)
}

// lineTxQueue feeds the channel's txcv callback from a simple FIFO of
// codewords pushed by readStdinCodewords, and reports transmit activity
// to onTransmit so PTT can be keyed.
type lineTxQueue struct {
	mu         sync.Mutex
	pending    []uint64
	onTransmit func(active bool)
}

func newLineTxQueue() *lineTxQueue {
	return &lineTxQueue{}
}

func (q *lineTxQueue) push(cw uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, cw)
}

func (q *lineTxQueue) next() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		if q.onTransmit != nil {
			q.onTransmit(false)
		}
		return mpt1327.SilenceCodeword
	}

	cw := q.pending[0]
	q.pending = q.pending[1:]
	if q.onTransmit != nil {
		q.onTransmit(true)
	}
	return cw
}

func readStdinCodewords(txq *lineTxQueue) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cw, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 48)
		if err != nil {
			log.Error("parsing codeword from stdin", "line", line, "err", err)
			continue
		}
		txq.push(cw)
	}
	if err := scanner.Err(); err != nil {
		log.Error("reading stdin", "err", err)
	}
}
