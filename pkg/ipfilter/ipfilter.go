package ipfilter

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
)

var ErrUnknownMode = errors.New("unknown ip filter mode")

type IPFilter interface {
	// Adds the network to the filter if it wasn't already present.
	Add(n *net.IPNet)
	// Removes the network from the filter if it was present.
	Remove(n *net.IPNet)
	IsAllowed(ip net.IP) bool
}

type Mode byte

const (
	// ModeAllow only lets listed networks through.
	ModeAllow Mode = iota
	// ModeDeny lets everything through except the listed networks.
	ModeDeny
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "allow":
		return ModeAllow, nil
	case "deny":
		return ModeDeny, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) String() string {
	switch m {
	case ModeAllow:
		return "allow"
	case ModeDeny:
		return "deny"
	}
	return "unknown"
}

type ipFilter struct {
	// Maps the network in CIDR notation to *net.IPNet
	nets sync.Map
	mode Mode
}

func New(mode Mode) IPFilter {
	return &ipFilter{
		mode: mode,
	}
}

// FromCIDRs creates a filter holding every network of cidrs. A plain IP
// is treated as a single host network.
func FromCIDRs(mode Mode, cidrs []string) (IPFilter, error) {
	f := New(mode)
	for _, cidr := range cidrs {
		n, err := ParseNet(cidr)
		if err != nil {
			return nil, err
		}
		f.Add(n)
	}
	return f, nil
}

func ParseNet(s string) (*net.IPNet, error) {
	if !strings.Contains(s, "/") {
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address %q", s)
		}

		bits := 128
		if ip4 := ip.To4(); ip4 != nil {
			ip, bits = ip4, 32
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}

	_, n, err := net.ParseCIDR(s)
	return n, err
}

func (f *ipFilter) Add(n *net.IPNet) {
	f.nets.Store(n.String(), n)
}

func (f *ipFilter) Remove(n *net.IPNet) {
	f.nets.Delete(n.String())
}

func (f *ipFilter) IsAllowed(ip net.IP) bool {
	listed := false
	f.nets.Range(func(_, v any) bool {
		listed = v.(*net.IPNet).Contains(ip)
		return !listed
	})

	switch f.mode {
	case ModeAllow:
		return listed
	case ModeDeny:
		return !listed
	}
	return false
}
