package inmemory

import (
	"context"
	"sync/atomic"

	"github.com/maxpoletaev/pgfanout/nodeclient"
)

// Conn is a connection to an in-memory node.
type Conn struct {
	node   *Node
	closed atomic.Bool
}

func (c *Conn) check() error {
	if c.closed.Load() {
		return ErrConnClosed
	}

	return nil
}

func (c *Conn) InsertItem(ctx context.Context, name string) (item nodeclient.Item, err error) {
	if err := c.check(); err != nil {
		return nodeclient.Item{}, err
	}

	err = c.node.exec(ctx, true, func() error {
		item, err = c.node.insert(name)
		return err
	})

	return item, err
}

func (c *Conn) ReplicateItem(ctx context.Context, item nodeclient.Item) error {
	if err := c.check(); err != nil {
		return err
	}

	return c.node.exec(ctx, true, func() error {
		return c.node.replicate(item)
	})
}

func (c *Conn) RecentItems(ctx context.Context, limit int) ([]nodeclient.Item, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	var items []nodeclient.Item

	err := c.node.exec(ctx, true, func() error {
		items = newestFirst(c.node.items)
		if limit >= 0 && len(items) > limit {
			items = items[:limit]
		}

		return nil
	})

	return items, err
}

func (c *Conn) SearchItems(ctx context.Context, pattern string) ([]nodeclient.Item, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	var items []nodeclient.Item

	err := c.node.exec(ctx, true, func() error {
		match, err := compileILike(pattern)
		if err != nil {
			return err
		}

		items = make([]nodeclient.Item, 0)

		for _, item := range newestFirst(c.node.items) {
			if match(item.Name) {
				items = append(items, item)
			}
		}

		return nil
	})

	return items, err
}

func (c *Conn) EnsureSchema(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}

	return c.node.exec(ctx, false, func() error {
		c.node.schemaReady = true
		return nil
	})
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrConnClosed
	}

	return nil
}
