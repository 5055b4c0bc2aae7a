package replication

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// Lister reads the most recent items from a single node.
type Lister struct {
	conns  Conns
	logger kitlog.Logger
	sink   Sink
}

func NewLister(conns Conns, logger kitlog.Logger, sink Sink) *Lister {
	if sink == nil {
		sink = nopSink{}
	}

	return &Lister{
		conns:  conns,
		logger: logger,
		sink:   sink,
	}
}

// ListRecent returns up to limit items stored on the node, newest first. A
// non-positive limit means DefaultListLimit, and limits above MaxListLimit
// are lowered to it. No other node is contacted.
func (l *Lister) ListRecent(ctx context.Context, id nodes.NodeID, limit int) ([]nodeclient.Item, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	var items []nodeclient.Item

	err := l.conns.With(ctx, id, func(ctx context.Context, conn nodeclient.Conn) (err error) {
		items, err = conn.RecentItems(ctx, limit)
		return err
	})

	if err != nil {
		if kind := nodeclient.KindOf(err); kind != nodeclient.ErrUnknownNode {
			level.Warn(l.logger).Log("msg", "failed to list items", "node_id", id, "err", err)
			l.sink.NodeFailed("list", id, kind)
		}

		return nil, err
	}

	if items == nil {
		items = make([]nodeclient.Item, 0)
	}

	return items, nil
}
