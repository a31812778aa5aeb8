package amethyst

import (
	"net"

	"go.uber.org/zap"

	"github.com/amethyst-mc/amethyst/internal/pkg/java"
)

// This is just a collection of utility functions to have consistent log fields
// for every data field that is being logged.

func logListener(l net.Listener) []zap.Field {
	return []zap.Field{
		zap.String("listenerNetwork", l.Addr().Network()),
		zap.String("listenerAddr", l.Addr().String()),
	}
}

func logConn(c net.Conn) []zap.Field {
	return []zap.Field{
		zap.String("connNetwork", c.LocalAddr().Network()),
		zap.String("connLocalAddr", c.LocalAddr().String()),
		zap.String("connRemoteAddr", c.RemoteAddr().String()),
	}
}

func logIdentity(id java.Identity) []zap.Field {
	return []zap.Field{
		zap.String("username", id.Name),
		zap.Stringer("playerUUID", id.UUID),
	}
}
