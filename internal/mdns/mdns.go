package mdns

import (
	"context"
	"fmt"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	service = "_http._tcp"
	domain  = "local."
)

// Publish registers a Multicast DNS entry for the cleaning server over the
// available network interfaces. It blocks until ctx is canceled, then shuts
// the mDNS server down.
func Publish(ctx context.Context, instance string, port int, info ...string) error {
	server, err := zeroconf.Register(instance, service, domain, port, info, nil)
	if err != nil {
		return fmt.Errorf("registering zeroconf: %v", err)
	}
	defer server.Shutdown()
	<-ctx.Done()
	return nil
}

// Lookup browses the LAN for the named instance and returns its address as
// host:port. The search is bounded by timeout.
func Lookup(ctx context.Context, instance string, timeout time.Duration) (string, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("initializing resolver: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	if err = resolver.Browse(ctx, service, domain, entries); err != nil {
		return "", fmt.Errorf("browsing %q: %v", service, err)
	}

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("instance %q not found on the network", instance)
		case entry, ok := <-entries:
			if !ok {
				return "", fmt.Errorf("instance %q not found on the network", instance)
			}
			if entry.Instance != instance {
				continue
			}
			if len(entry.AddrIPv4) == 0 {
				continue
			}
			return fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port), nil
		}
	}
}
