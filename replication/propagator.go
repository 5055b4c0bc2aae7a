package replication

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

type Mode string

const (
	// ModeAsync returns as soon as the primary has committed, propagation to
	// the secondaries continues in the background.
	ModeAsync Mode = "async"

	// ModeSync waits for every secondary before returning.
	ModeSync Mode = "sync"
)

const defaultPropagationTimeout = 30 * time.Second

// ParseMode converts a textual mode, as given in the configuration.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeAsync, ModeSync:
		return m, nil
	case "":
		return ModeAsync, nil
	default:
		return "", fmt.Errorf("unknown propagation mode: %q", s)
	}
}

type Config struct {
	Mode               Mode
	PropagationTimeout time.Duration
	MaxConcurrency     int
}

// SecondaryOutcome is the result of copying an item to one secondary.
// Kind is nil on success, ErrUnreachable or ErrStatementFailed otherwise.
type SecondaryOutcome struct {
	Node nodes.NodeID
	Kind error
	Err  error
}

func (o SecondaryOutcome) OK() bool {
	return o.Err == nil
}

// Report describes a finished propagation.
type Report struct {
	ID       uuid.UUID
	Item     nodeclient.Item
	Outcomes []SecondaryOutcome
	Duration time.Duration
}

// Failed returns the number of secondaries the item could not be copied to.
func (r Report) Failed() (n int) {
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}

	return n
}

// Propagation tracks copying of one item to the secondaries.
type Propagation struct {
	ID       uuid.UUID
	done     chan struct{}
	outcomes []SecondaryOutcome
}

// Done is closed once every secondary has been attempted.
func (p *Propagation) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the propagation is finished and returns the outcome of
// every secondary in registry order.
func (p *Propagation) Wait(ctx context.Context) ([]SecondaryOutcome, error) {
	select {
	case <-p.done:
		return p.outcomes, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type WriteResult struct {
	Item        nodeclient.Item
	Propagation *Propagation
}

// Propagator writes items to the primary node and then copies them to every
// secondary. The outcome of the write is decided by the primary alone.
type Propagator struct {
	conns  Conns
	logger kitlog.Logger
	sink   Sink
	config Config

	mut     sync.Mutex
	closed  bool
	running sync.WaitGroup
}

func NewPropagator(conns Conns, logger kitlog.Logger, sink Sink, config Config) *Propagator {
	if sink == nil {
		sink = nopSink{}
	}

	if config.Mode == "" {
		config.Mode = ModeAsync
	}

	if config.PropagationTimeout <= 0 {
		config.PropagationTimeout = defaultPropagationTimeout
	}

	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = conns.Registry().Len()
	}

	return &Propagator{
		conns:  conns,
		logger: logger,
		sink:   sink,
		config: config,
	}
}

func (p *Propagator) Write(ctx context.Context, name string) (*WriteResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", nodeclient.ErrInvalidInput)
	}

	p.mut.Lock()
	if p.closed {
		p.mut.Unlock()
		return nil, ErrClosed
	}
	p.running.Add(1)
	p.mut.Unlock()

	started := false

	defer func() {
		if !started {
			p.running.Done()
		}
	}()

	var (
		propID  = uuid.New()
		logger  = kitlog.With(p.logger, "propagation_id", propID)
		primary = p.conns.Registry().Primary()
		item    nodeclient.Item
	)

	err := p.conns.With(ctx, primary, func(ctx context.Context, conn nodeclient.Conn) (err error) {
		item, err = conn.InsertItem(ctx, name)
		return err
	})

	if err != nil {
		level.Error(logger).Log("msg", "failed to write to primary", "node_id", primary, "err", err)

		if errors.Is(err, nodeclient.ErrStatementFailed) {
			return nil, fmt.Errorf("%w: %w", ErrPrimaryWriteFailed, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrPrimaryUnreachable, err)
	}

	level.Info(logger).Log("msg", "item written to primary", "node_id", primary, "item_id", item.ID)

	prop := &Propagation{
		ID:   propID,
		done: make(chan struct{}),
	}

	started = true

	go func() {
		defer p.running.Done()
		p.propagate(logger, item, prop)
	}()

	if p.config.Mode == ModeSync {
		// The item is committed on the primary at this point, so a cancelled
		// request only stops the waiting.
		if _, err := prop.Wait(ctx); err != nil {
			level.Warn(logger).Log("msg", "stopped waiting for propagation", "err", err)
		}
	}

	return &WriteResult{
		Item:        item,
		Propagation: prop,
	}, nil
}

// propagate copies the item to every secondary. It runs detached from the
// request that created the item.
func (p *Propagator) propagate(logger kitlog.Logger, item nodeclient.Item, prop *Propagation) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PropagationTimeout)
	defer cancel()

	start := time.Now()
	secondaries := p.conns.Registry().Secondaries()

	replies := fanOut(ctx, secondaries, p.config.MaxConcurrency, func(ctx context.Context, id nodes.NodeID) (struct{}, error) {
		return struct{}{}, p.conns.With(ctx, id, func(ctx context.Context, conn nodeclient.Conn) error {
			return conn.ReplicateItem(ctx, item)
		})
	})

	outcomes := make([]SecondaryOutcome, len(replies))

	for i, r := range replies {
		outcomes[i] = SecondaryOutcome{
			Node: r.node,
			Kind: nodeclient.KindOf(r.err),
			Err:  r.err,
		}

		nodeLogger := kitlog.With(logger, "node_id", r.node)
		if r.err != nil {
			level.Warn(nodeLogger).Log("msg", "failed to propagate item", "item_id", item.ID, "err", r.err)
			continue
		}

		level.Debug(nodeLogger).Log("msg", "item propagated", "item_id", item.ID)
	}

	report := Report{
		ID:       prop.ID,
		Item:     item,
		Outcomes: outcomes,
		Duration: time.Since(start),
	}

	level.Info(logger).Log(
		"msg", "propagation finished",
		"item_id", item.ID,
		"secondaries", len(outcomes),
		"failed", report.Failed(),
		"duration", report.Duration,
	)

	p.sink.PropagationFinished(report)

	prop.outcomes = outcomes
	close(prop.done)
}

// Close stops accepting writes and waits for running propagations to finish
// or for ctx to expire, whichever comes first.
func (p *Propagator) Close(ctx context.Context) error {
	p.mut.Lock()
	p.closed = true
	p.mut.Unlock()

	done := make(chan struct{})

	go func() {
		p.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
