package nodeclient

//go:generate mockgen -destination=mock/client_mock.go -package=mock github.com/maxpoletaev/pgfanout/nodeclient Conn,Dialer

import (
	"context"
	"time"

	"github.com/maxpoletaev/pgfanout/nodes"
)

// Item is a single row of the items table as stored on one node.
type Item struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Conn is a live connection to one storage node. Every statement commits on
// its own, there are no transaction boundaries.
type Conn interface {
	// InsertItem inserts a new item and lets the node assign its id and
	// creation time.
	InsertItem(ctx context.Context, name string) (Item, error)

	// ReplicateItem stores an item that has already been created elsewhere,
	// keeping its id and creation time.
	ReplicateItem(ctx context.Context, item Item) error

	// RecentItems returns up to limit items, newest first.
	RecentItems(ctx context.Context, limit int) ([]Item, error)

	// SearchItems returns items whose name matches the given LIKE pattern,
	// ignoring case, newest first.
	SearchItems(ctx context.Context, pattern string) ([]Item, error)

	// EnsureSchema creates the items table unless it already exists.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}

// Dialer opens connections to storage nodes.
type Dialer interface {
	DialContext(ctx context.Context, id nodes.NodeID, endpoint nodes.Endpoint) (Conn, error)
}
