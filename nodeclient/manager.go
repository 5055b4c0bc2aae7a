package nodeclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/pgfanout/nodes"
)

const (
	defaultConnectTimeout   = 3 * time.Second
	defaultStatementTimeout = 5 * time.Second
)

type Option func(*ConnManager)

// WithConnectTimeout bounds the time spent establishing a connection.
func WithConnectTimeout(t time.Duration) Option {
	return func(m *ConnManager) {
		m.connectTimeout = t
	}
}

// WithStatementTimeout bounds the time a scoped operation may spend on the
// node once the connection has been established.
func WithStatementTimeout(t time.Duration) Option {
	return func(m *ConnManager) {
		m.statementTimeout = t
	}
}

// ConnManager hands out short-lived connections to the registered nodes.
// Connections are not pooled or shared: every Acquire dials the node again,
// and the caller owns the connection until it is released.
type ConnManager struct {
	registry         *nodes.Registry
	dialer           Dialer
	logger           kitlog.Logger
	connectTimeout   time.Duration
	statementTimeout time.Duration
}

func NewConnManager(registry *nodes.Registry, dialer Dialer, logger kitlog.Logger, opts ...Option) *ConnManager {
	m := &ConnManager{
		registry:         registry,
		dialer:           dialer,
		logger:           logger,
		connectTimeout:   defaultConnectTimeout,
		statementTimeout: defaultStatementTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Registry returns the node registry the manager resolves endpoints from.
func (m *ConnManager) Registry() *nodes.Registry {
	return m.registry
}

// Acquire connects to the node with the given id. It fails with ErrUnknownNode
// if the node is not registered, and with a NodeError of kind ErrUnreachable if
// the node cannot be reached within the connect timeout.
func (m *ConnManager) Acquire(ctx context.Context, id nodes.NodeID) (Conn, error) {
	endpoint, ok := m.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	dialCtx, cancel := context.WithTimeout(ctx, m.connectTimeout)
	defer cancel()

	conn, err := m.dialer.DialContext(dialCtx, id, endpoint)
	if err != nil {
		level.Warn(m.logger).Log("msg", "failed to connect", "node_id", id, "err", err)
		return nil, unreachable(id, err)
	}

	level.Debug(m.logger).Log("msg", "connected", "node_id", id)

	return &managedConn{Conn: conn, id: id}, nil
}

// Release closes the connection. It is safe to call it more than once and
// with a nil connection. Close errors are logged and otherwise ignored.
func (m *ConnManager) Release(conn Conn) {
	if conn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			level.Error(m.logger).Log("msg", "panic while closing connection", "panic", r)
		}
	}()

	if err := conn.Close(); err != nil {
		logger := m.logger
		if mc, ok := conn.(*managedConn); ok {
			logger = kitlog.With(logger, "node_id", mc.id)
		}

		level.Warn(logger).Log("msg", "failed to close connection", "err", err)
	}
}

// With acquires a connection to the node, runs fn and releases the connection
// on every exit path. Errors returned by fn that are not already node errors
// are reported as ErrStatementFailed. The context passed to fn carries the
// statement timeout.
func (m *ConnManager) With(ctx context.Context, id nodes.NodeID, fn func(ctx context.Context, conn Conn) error) error {
	conn, err := m.Acquire(ctx, id)
	if err != nil {
		return err
	}

	defer m.Release(conn)

	stmtCtx, cancel := context.WithTimeout(ctx, m.statementTimeout)
	defer cancel()

	if err := fn(stmtCtx, conn); err != nil {
		var nodeErr *NodeError
		if errors.As(err, &nodeErr) {
			return err
		}

		return statementFailed(id, err)
	}

	return nil
}

// managedConn makes Close idempotent regardless of the driver.
type managedConn struct {
	Conn
	id       nodes.NodeID
	once     sync.Once
	closeErr error
}

func (c *managedConn) Close() error {
	c.once.Do(func() {
		c.closeErr = c.Conn.Close()
	})

	return c.closeErr
}
