package schema

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/pgfanout/internal/multierror"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

// Conns is the part of the connection manager needed to bootstrap nodes.
type Conns interface {
	Registry() *nodes.Registry
	With(ctx context.Context, id nodes.NodeID, fn func(ctx context.Context, conn nodeclient.Conn) error) error
}

// Bootstrap creates the items table on every registered node. Nodes that
// cannot be prepared are logged and skipped, so a node that is down at start
// does not keep the service from starting. The returned error lists every
// node that failed, or is nil.
func Bootstrap(ctx context.Context, conns Conns, logger kitlog.Logger) error {
	errs := multierror.New[nodes.NodeID]()

	for _, id := range conns.Registry().IDs() {
		err := conns.With(ctx, id, func(ctx context.Context, conn nodeclient.Conn) error {
			return conn.EnsureSchema(ctx)
		})

		if err != nil {
			level.Warn(logger).Log("msg", "failed to prepare node", "node_id", id, "err", err)
			errs.Add(id, err)

			continue
		}

		level.Info(logger).Log("msg", "node is ready", "node_id", id)
	}

	return errs.Combined()
}
