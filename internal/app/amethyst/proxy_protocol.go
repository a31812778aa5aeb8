package amethyst

import (
	"errors"
	"fmt"
	"net"

	"github.com/pires/go-proxyproto"
)

var (
	ErrUpstreamNotTrusted = errors.New("upstream not trusted")
	ErrNoTrustedCIDRs     = errors.New("no trusted CIDRs")
)

// wrapProxyProtocol makes l read the PROXY protocol header (v1 or v2) of
// every connection. The header is required from trusted upstreams and all
// other upstreams are refused.
func wrapProxyProtocol(l net.Listener, trustedCIDRs []string) (net.Listener, error) {
	trusted, err := parseCIDRs(trustedCIDRs)
	if err != nil {
		return nil, err
	}

	return &proxyproto.Listener{
		Listener: l,
		Policy:   trustedUpstreamPolicy(trusted),
	}, nil
}

func parseCIDRs(ss []string) ([]*net.IPNet, error) {
	if len(ss) == 0 {
		return nil, ErrNoTrustedCIDRs
	}

	nets := make([]*net.IPNet, 0, len(ss))
	for _, s := range ss {
		_, ipNet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("trusted CIDR %q: %w", s, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

func trustedUpstreamPolicy(trusted []*net.IPNet) proxyproto.PolicyFunc {
	return func(upstream net.Addr) (proxyproto.Policy, error) {
		tcpAddr, ok := upstream.(*net.TCPAddr)
		if !ok {
			return proxyproto.REJECT, fmt.Errorf("%w: %s is not a tcp address", ErrUpstreamNotTrusted, upstream)
		}

		for _, ipNet := range trusted {
			if ipNet.Contains(tcpAddr.IP) {
				return proxyproto.REQUIRE, nil
			}
		}
		return proxyproto.REJECT, ErrUpstreamNotTrusted
	}
}
