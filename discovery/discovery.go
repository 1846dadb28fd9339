// Package discovery announces this modem's control surface over mDNS/
// DNS-SD, using the pure-Go github.com/brutella/dnssd package, so a
// dispatcher or control head on the same network can find it without a
// hardcoded address.
package discovery

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
)

// ServiceType is the DNS-SD service type this modem announces itself
// under.
const ServiceType = "_mpt1327-ctl._tcp"

// Announcer holds the running mDNS responder for a single announced
// service instance.
type Announcer struct {
	cancel context.CancelFunc
}

// Announce starts advertising name on port over mDNS/DNS-SD, and
// returns once the responder goroutine has been launched. Call Stop to
// withdraw the announcement.
func Announce(name string, port int) (*Announcer, error) {
	cfg := dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery: create service: %w", err)
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("discovery: create responder: %w", err)
	}

	if _, err := rp.Add(sv); err != nil {
		return nil, fmt.Errorf("discovery: add service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Info("discovery: announcing", "service", ServiceType, "name", name, "port", port)

	go func() {
		if err := rp.Respond(ctx); err != nil && ctx.Err() == nil {
			log.Error("discovery: responder stopped", "err", err)
		}
	}()

	return &Announcer{cancel: cancel}, nil
}

// Stop withdraws the announcement.
func (a *Announcer) Stop() {
	a.cancel()
}
