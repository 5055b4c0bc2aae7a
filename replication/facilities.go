package replication

import (
	"context"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

// Conns is the part of nodeclient.ConnManager used by the coordinators.
type Conns interface {
	Registry() *nodes.Registry
	With(ctx context.Context, id nodes.NodeID, fn func(ctx context.Context, conn nodeclient.Conn) error) error
}

// Sink receives the outcomes of background work that has no caller left to
// report to: finished propagations and nodes that failed during a read.
type Sink interface {
	PropagationFinished(report Report)
	NodeFailed(op string, id nodes.NodeID, kind error)
}

type nopSink struct{}

func (nopSink) PropagationFinished(Report) {}

func (nopSink) NodeFailed(string, nodes.NodeID, error) {}
