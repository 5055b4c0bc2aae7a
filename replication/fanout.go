package replication

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maxpoletaev/pgfanout/nodes"
)

type nodeReply[T any] struct {
	node  nodes.NodeID
	reply T
	err   error
}

// fanOut calls fn for every node, running at most limit calls at a time
// (no limit if limit <= 0). A failing node does not cancel the others. The
// replies are returned in the order of ids, whatever order they complete in.
func fanOut[T any](ctx context.Context, ids []nodes.NodeID, limit int, fn func(context.Context, nodes.NodeID) (T, error)) []nodeReply[T] {
	replies := make([]nodeReply[T], len(ids))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, id := range ids {
		i, id := i, id

		g.Go(func() error {
			reply, err := fn(ctx, id)
			replies[i] = nodeReply[T]{node: id, reply: reply, err: err}

			return nil
		})
	}

	_ = g.Wait()

	return replies
}
