package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/maxpoletaev/pgfanout/nodeclient"
)

const createItemsTable = `
	CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

const (
	replicateLockKey   = 0x7067666f // "pgfo"
	replicateLockQuery = "SELECT pg_advisory_xact_lock($1)"

	// Runs after the insert, in a new snapshot that sees every committed copy.
	bumpSequenceQuery = "SELECT setval(pg_get_serial_sequence('items', 'id'), " +
		"GREATEST($1, (SELECT COALESCE(MAX(id), 1) FROM items)))"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{"id", "name", "created_at"}

// Conn is a connection to a single PostgreSQL node. Statements other than
// ReplicateItem run outside of transactions and commit immediately.
type Conn struct {
	db *sqlx.DB
}

func (c *Conn) InsertItem(ctx context.Context, name string) (nodeclient.Item, error) {
	query, args, err := insertItemQuery(name)
	if err != nil {
		return nodeclient.Item{}, err
	}

	var item nodeclient.Item
	if err := c.db.GetContext(ctx, &item, query, args...); err != nil {
		return nodeclient.Item{}, fmt.Errorf("insert item: %w", err)
	}

	return item, nil
}

// ReplicateItem stores the item with its original id and creation time and
// moves the id sequence past it, so the node can still assign ids on its own
// if it is ever promoted to primary. Concurrent copies to the same node are
// serialized by an advisory lock, otherwise a slower copy could move the
// sequence back.
func (c *Conn) ReplicateItem(ctx context.Context, item nodeclient.Item) error {
	query, args, err := replicateItemQuery(item)
	if err != nil {
		return err
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, replicateLockQuery, replicateLockKey); err != nil {
		return fmt.Errorf("lock items sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replicate item %d: %w", item.ID, err)
	}

	if _, err := tx.ExecContext(ctx, bumpSequenceQuery, item.ID); err != nil {
		return fmt.Errorf("bump items sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (c *Conn) RecentItems(ctx context.Context, limit int) ([]nodeclient.Item, error) {
	query, args, err := recentItemsQuery(limit)
	if err != nil {
		return nil, err
	}

	items := make([]nodeclient.Item, 0)
	if err := c.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select recent items: %w", err)
	}

	return items, nil
}

func (c *Conn) SearchItems(ctx context.Context, pattern string) ([]nodeclient.Item, error) {
	query, args, err := searchItemsQuery(pattern)
	if err != nil {
		return nil, err
	}

	items := make([]nodeclient.Item, 0)
	if err := c.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	return items, nil
}

func (c *Conn) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}

	return nil
}

func (c *Conn) Close() error {
	return c.db.Close()
}

func insertItemQuery(name string) (string, []interface{}, error) {
	return psql.Insert("items").
		Columns("name").
		Values(name).
		Suffix("RETURNING id, name, created_at").
		ToSql()
}

func replicateItemQuery(item nodeclient.Item) (string, []interface{}, error) {
	return psql.Insert("items").
		Columns(itemColumns...).
		Values(item.ID, item.Name, item.CreatedAt).
		ToSql()
}

func recentItemsQuery(limit int) (string, []interface{}, error) {
	return psql.Select(itemColumns...).
		From("items").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func searchItemsQuery(pattern string) (string, []interface{}, error) {
	return psql.Select(itemColumns...).
		From("items").
		Where("name ILIKE ?", pattern).
		OrderBy("created_at DESC").
		ToSql()
}
