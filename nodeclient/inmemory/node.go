package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/maxpoletaev/pgfanout/nodeclient"
)

var (
	ErrNodeDown      = errors.New("connection refused")
	ErrConnClosed    = errors.New("connection is closed")
	ErrDuplicateID   = errors.New("duplicate key value violates unique constraint")
	ErrNameEmpty     = errors.New("null value in column \"name\" violates not-null constraint")
	errMissingSchema = errors.New("relation \"items\" does not exist")
)

// Node is an in-process stand-in for a storage node. It keeps items in memory
// and mimics the behaviour of the items table closely enough for development
// and tests: ids come from a sequence, names are matched with ILIKE semantics
// and results are ordered by creation time, newest first.
type Node struct {
	mut         sync.Mutex
	items       []nodeclient.Item
	nextID      int64
	now         func() time.Time
	schemaReady bool
	down        bool
	stmtErr     error
	dials       int
	statements  int
}

func NewNode() *Node {
	return &Node{
		nextID:      1,
		now:         time.Now,
		schemaReady: true,
	}
}

// NewNodeWithoutSchema returns a node whose items table does not exist until
// EnsureSchema is called.
func NewNodeWithoutSchema() *Node {
	n := NewNode()
	n.schemaReady = false

	return n
}

// SetClock replaces the clock used for creation times.
func (n *Node) SetClock(now func() time.Time) {
	n.mut.Lock()
	n.now = now
	n.mut.Unlock()
}

// SetDown makes the node refuse (or accept again) new connections.
func (n *Node) SetDown(down bool) {
	n.mut.Lock()
	n.down = down
	n.mut.Unlock()
}

// FailStatements makes every subsequent statement fail with err. Passing nil
// restores normal operation.
func (n *Node) FailStatements(err error) {
	n.mut.Lock()
	n.stmtErr = err
	n.mut.Unlock()
}

// Put stores an item directly, bypassing connections. It is meant for seeding.
func (n *Node) Put(items ...nodeclient.Item) {
	n.mut.Lock()
	defer n.mut.Unlock()

	for _, item := range items {
		n.items = append(n.items, item)
		if item.ID >= n.nextID {
			n.nextID = item.ID + 1
		}
	}
}

// Items returns a snapshot of all stored items in insertion order.
func (n *Node) Items() []nodeclient.Item {
	n.mut.Lock()
	defer n.mut.Unlock()

	items := make([]nodeclient.Item, len(n.items))
	copy(items, n.items)

	return items
}

// Dials returns the number of connection attempts made to the node.
func (n *Node) Dials() int {
	n.mut.Lock()
	defer n.mut.Unlock()

	return n.dials
}

// Statements returns the number of statements executed on the node.
func (n *Node) Statements() int {
	n.mut.Lock()
	defer n.mut.Unlock()

	return n.statements
}

func (n *Node) connect() error {
	n.mut.Lock()
	defer n.mut.Unlock()

	n.dials++

	if n.down {
		return ErrNodeDown
	}

	return nil
}

// exec runs fn under the node lock after the common statement checks.
func (n *Node) exec(ctx context.Context, needSchema bool, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mut.Lock()
	defer n.mut.Unlock()

	n.statements++

	if n.down {
		return ErrNodeDown
	}

	if n.stmtErr != nil {
		return n.stmtErr
	}

	if needSchema && !n.schemaReady {
		return errMissingSchema
	}

	return fn()
}

func (n *Node) hasID(id int64) bool {
	for _, item := range n.items {
		if item.ID == id {
			return true
		}
	}

	return false
}

func (n *Node) insert(name string) (nodeclient.Item, error) {
	if name == "" {
		return nodeclient.Item{}, ErrNameEmpty
	}

	// Like a SERIAL column, the sequence skips values taken by explicit inserts.
	for n.hasID(n.nextID) {
		n.nextID++
	}

	item := nodeclient.Item{
		ID:        n.nextID,
		Name:      name,
		CreatedAt: n.now().UTC(),
	}

	n.nextID++
	n.items = append(n.items, item)

	return item, nil
}

func (n *Node) replicate(item nodeclient.Item) error {
	if item.Name == "" {
		return ErrNameEmpty
	}

	if n.hasID(item.ID) {
		return fmt.Errorf("%w: id=%d", ErrDuplicateID, item.ID)
	}

	n.items = append(n.items, item)

	if item.ID >= n.nextID {
		n.nextID = item.ID + 1
	}

	return nil
}

// newestFirst returns the items sorted by creation time descending. Items
// created at the same instant are ordered by id, also descending.
func newestFirst(items []nodeclient.Item) []nodeclient.Item {
	sorted := make([]nodeclient.Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID > sorted[j].ID
		}

		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	return sorted
}
