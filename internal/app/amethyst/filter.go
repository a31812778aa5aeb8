package amethyst

import (
	"errors"
	"net"

	"github.com/amethyst-mc/amethyst/pkg/ipfilter"
)

var ErrIPNotAllowed = errors.New("ip not allowed")

// A Filterer decides whether an accepted connection may be served.
type Filterer interface {
	Filter(c net.Conn) error
}

type FilterFunc func(c net.Conn) error

func (f FilterFunc) Filter(c net.Conn) error {
	return f(c)
}

// Filter runs its filterers in order and fails on the first error.
type Filter []Filterer

func (f Filter) Filter(c net.Conn) error {
	for _, filterer := range f {
		if err := filterer.Filter(c); err != nil {
			return err
		}
	}
	return nil
}

// FilterByIP rejects connections whose remote IP is not allowed by f.
func FilterByIP(f ipfilter.IPFilter) Filterer {
	return FilterFunc(func(c net.Conn) error {
		host, _, err := net.SplitHostPort(c.RemoteAddr().String())
		if err != nil {
			return err
		}

		if !f.IsAllowed(net.ParseIP(host)) {
			return ErrIPNotAllowed
		}
		return nil
	})
}
