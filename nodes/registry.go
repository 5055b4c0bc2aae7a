package nodes

import (
	"errors"
	"fmt"
)

var (
	ErrNoNodes         = errors.New("registry has no nodes")
	ErrDuplicateNode   = errors.New("duplicate node id")
	ErrEmptyEndpoint   = errors.New("node endpoint is empty")
	ErrPrimaryNotFound = errors.New("primary node is not registered")
	ErrPrimaryConflict = errors.New("primary is set both in the nodes file and explicitly")
)

// NodeID identifies a storage node. It is used as-is in logs, metrics and
// API responses, so it should be short and human-readable (e.g. "node1").
type NodeID string

// Endpoint describes how to reach a node. DSN is passed to the driver
// unchanged and carries the address, the credentials and the database name.
type Endpoint struct {
	DSN string
}

// Node is a registry entry.
type Node struct {
	ID       NodeID
	Endpoint Endpoint
}

// Registry is an immutable, ordered set of nodes with one of them designated
// as the primary. The order is the one the nodes were configured in, and every
// fan-out operation walks the nodes in that order.
type Registry struct {
	primary NodeID
	nodes   []Node
	index   map[NodeID]int
}

// New creates a registry. The primary must be one of the given nodes.
func New(primary NodeID, nodes ...Node) (*Registry, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}

	r := &Registry{
		primary: primary,
		nodes:   make([]Node, 0, len(nodes)),
		index:   make(map[NodeID]int, len(nodes)),
	}

	for _, node := range nodes {
		if node.ID == "" {
			return nil, fmt.Errorf("node id is empty")
		}

		if node.Endpoint.DSN == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyEndpoint, node.ID)
		}

		if _, ok := r.index[node.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
		}

		r.index[node.ID] = len(r.nodes)
		r.nodes = append(r.nodes, node)
	}

	if _, ok := r.index[primary]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrimaryNotFound, primary)
	}

	return r, nil
}

// Lookup returns the endpoint of the node with the given id.
func (r *Registry) Lookup(id NodeID) (Endpoint, bool) {
	i, ok := r.index[id]
	if !ok {
		return Endpoint{}, false
	}

	return r.nodes[i].Endpoint, true
}

// Has reports whether the node is registered.
func (r *Registry) Has(id NodeID) bool {
	_, ok := r.index[id]
	return ok
}

// Primary returns the id of the node that receives every write first.
func (r *Registry) Primary() NodeID {
	return r.primary
}

// IsPrimary reports whether id is the primary node.
func (r *Registry) IsPrimary(id NodeID) bool {
	return id == r.primary
}

// IDs returns all node ids in registry order.
func (r *Registry) IDs() []NodeID {
	ids := make([]NodeID, len(r.nodes))
	for i, node := range r.nodes {
		ids[i] = node.ID
	}

	return ids
}

// Secondaries returns the ids of all non-primary nodes in registry order.
func (r *Registry) Secondaries() []NodeID {
	ids := make([]NodeID, 0, len(r.nodes)-1)
	for _, node := range r.nodes {
		if node.ID != r.primary {
			ids = append(ids, node.ID)
		}
	}

	return ids
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}
