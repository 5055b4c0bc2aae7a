package replication

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodeclient/inmemory"
	"github.com/maxpoletaev/pgfanout/nodes"
)

type recordingSink struct {
	mut      sync.Mutex
	reports  []Report
	failures map[string][]nodes.NodeID
}

func (s *recordingSink) PropagationFinished(report Report) {
	s.mut.Lock()
	s.reports = append(s.reports, report)
	s.mut.Unlock()
}

func (s *recordingSink) NodeFailed(op string, id nodes.NodeID, _ error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.failures == nil {
		s.failures = make(map[string][]nodes.NodeID)
	}

	s.failures[op] = append(s.failures[op], id)
}

func (s *recordingSink) Reports() []Report {
	s.mut.Lock()
	defer s.mut.Unlock()

	return append([]Report(nil), s.reports...)
}

func newRegistry(t *testing.T, ids ...nodes.NodeID) *nodes.Registry {
	t.Helper()

	list := make([]nodes.Node, 0, len(ids))
	for _, id := range ids {
		list = append(list, nodes.Node{ID: id, Endpoint: nodes.Endpoint{DSN: "memory://" + string(id)}})
	}

	registry, err := nodes.New(ids[0], list...)
	require.NoError(t, err)

	return registry
}

// newCluster returns a connection manager over in-memory nodes. The first id
// is the primary.
func newCluster(t *testing.T, ids ...nodes.NodeID) (*nodeclient.ConnManager, *inmemory.Dialer) {
	t.Helper()

	dialer := inmemory.NewDialer()
	for _, id := range ids {
		dialer.Node(id)
	}

	mgr := nodeclient.NewConnManager(newRegistry(t, ids...), dialer, kitlog.NewNopLogger(),
		nodeclient.WithConnectTimeout(time.Second),
		nodeclient.WithStatementTimeout(time.Second),
	)

	return mgr, dialer
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func itemNames(items []nodeclient.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return names
}

func TestFanOut_KeepsOrder(t *testing.T) {
	ids := []nodes.NodeID{"node1", "node2", "node3", "node4"}
	delays := map[nodes.NodeID]time.Duration{
		"node1": 30 * time.Millisecond,
		"node2": 0,
		"node3": 20 * time.Millisecond,
		"node4": 10 * time.Millisecond,
	}

	replies := fanOut(context.Background(), ids, 2, func(ctx context.Context, id nodes.NodeID) (string, error) {
		time.Sleep(delays[id])

		if id == "node3" {
			return "", errors.New("failed")
		}

		return string(id), nil
	})

	require.Len(t, replies, 4)

	for i, r := range replies {
		require.Equal(t, ids[i], r.node)
	}

	require.Equal(t, "node1", replies[0].reply)
	require.Error(t, replies[2].err)
	require.NoError(t, replies[3].err)
}

func TestFanOut_RespectsLimit(t *testing.T) {
	var (
		mut     sync.Mutex
		running int
		peak    int
	)

	ids := []nodes.NodeID{"a", "b", "c", "d", "e", "f"}

	fanOut(context.Background(), ids, 2, func(ctx context.Context, id nodes.NodeID) (struct{}, error) {
		mut.Lock()
		running++
		if running > peak {
			peak = running
		}
		mut.Unlock()

		time.Sleep(5 * time.Millisecond)

		mut.Lock()
		running--
		mut.Unlock()

		return struct{}{}, nil
	})

	require.LessOrEqual(t, peak, 2)
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"Plain":     {input: "alpha", want: "alpha"},
		"Percent":   {input: "50%", want: `50\%`},
		"Underline": {input: "a_b", want: `a\_b`},
		"Backslash": {input: `a\b`, want: `a\\b`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}

func TestMergeByID(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	merged := mergeByID([]nodeItems{
		{node: "node1", items: []nodeclient.Item{{ID: 1, Name: "Alpha", CreatedAt: created}}},
		{node: "node2", items: []nodeclient.Item{
			{ID: 2, Name: "ALPHA2", CreatedAt: created},
			{ID: 1, Name: "Alpha (stale)", CreatedAt: created},
			{ID: 1, Name: "Alpha", CreatedAt: created},
		}},
		{node: "node3", items: []nodeclient.Item{{ID: 1, Name: "Alpha", CreatedAt: created}}},
	})

	require.Len(t, merged, 2)
	require.Equal(t, "Alpha", merged[0].Name, "first seen node wins")
	require.Equal(t, []nodes.NodeID{"node1", "node2", "node3"}, merged[0].FoundOn)
	require.Equal(t, "ALPHA2", merged[1].Name)
	require.Equal(t, []nodes.NodeID{"node2"}, merged[1].FoundOn)
}
