package inmemory

import (
	"context"
	"sync"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

// Dialer connects to in-memory nodes. Nodes are created on first use, so a
// dialer can serve any registry without prior setup.
type Dialer struct {
	mut   sync.Mutex
	nodes map[nodes.NodeID]*Node
}

func NewDialer() *Dialer {
	return &Dialer{
		nodes: make(map[nodes.NodeID]*Node),
	}
}

// Node returns the node with the given id, creating it if needed.
func (d *Dialer) Node(id nodes.NodeID) *Node {
	d.mut.Lock()
	defer d.mut.Unlock()

	n, ok := d.nodes[id]
	if !ok {
		n = NewNode()
		d.nodes[id] = n
	}

	return n
}

// AddNode registers a preconfigured node under the given id.
func (d *Dialer) AddNode(id nodes.NodeID, n *Node) {
	d.mut.Lock()
	d.nodes[id] = n
	d.mut.Unlock()
}

func (d *Dialer) DialContext(ctx context.Context, id nodes.NodeID, _ nodes.Endpoint) (nodeclient.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := d.Node(id)
	if err := n.connect(); err != nil {
		return nil, err
	}

	return &Conn{node: n}, nil
}
