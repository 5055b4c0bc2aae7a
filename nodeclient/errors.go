package nodeclient

import (
	"errors"
	"fmt"

	"github.com/maxpoletaev/pgfanout/nodes"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownNode     = errors.New("unknown node")
	ErrUnreachable     = errors.New("node unreachable")
	ErrStatementFailed = errors.New("statement failed")
)

// NodeError is a failure that happened while talking to a particular node.
// Kind is either ErrUnreachable or ErrStatementFailed, and both Kind and the
// underlying error can be matched with errors.Is.
type NodeError struct {
	Node nodes.NodeID
	Kind error
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Node, e.Kind, e.Err)
}

func (e *NodeError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func unreachable(id nodes.NodeID, err error) *NodeError {
	return &NodeError{Node: id, Kind: ErrUnreachable, Err: err}
}

func statementFailed(id nodes.NodeID, err error) *NodeError {
	return &NodeError{Node: id, Kind: ErrStatementFailed, Err: err}
}

// KindOf returns the error class of err: ErrUnknownNode, ErrUnreachable,
// ErrStatementFailed, or nil if err is nil or not a node error.
func KindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnknownNode):
		return ErrUnknownNode
	case errors.Is(err, ErrUnreachable):
		return ErrUnreachable
	case errors.Is(err, ErrStatementFailed):
		return ErrStatementFailed
	default:
		return nil
	}
}
