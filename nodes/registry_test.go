package nodes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []Node {
	return []Node{
		{ID: "node1", Endpoint: Endpoint{DSN: "postgres://n1"}},
		{ID: "node2", Endpoint: Endpoint{DSN: "postgres://n2"}},
		{ID: "node3", Endpoint: Endpoint{DSN: "postgres://n3"}},
	}
}

func TestRegistry_New(t *testing.T) {
	tests := map[string]struct {
		primary NodeID
		nodes   []Node
		wantErr error
	}{
		"Valid": {
			primary: "node1",
			nodes:   testNodes(),
		},
		"Empty": {
			primary: "node1",
			wantErr: ErrNoNodes,
		},
		"UnknownPrimary": {
			primary: "node9",
			nodes:   testNodes(),
			wantErr: ErrPrimaryNotFound,
		},
		"Duplicate": {
			primary: "node1",
			nodes:   append(testNodes(), Node{ID: "node2", Endpoint: Endpoint{DSN: "x"}}),
			wantErr: ErrDuplicateNode,
		},
		"EmptyDSN": {
			primary: "node1",
			nodes:   []Node{{ID: "node1"}},
			wantErr: ErrEmptyEndpoint,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.primary, tt.nodes...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRegistry_Order(t *testing.T) {
	r, err := New("node2", testNodes()...)
	require.NoError(t, err)

	assert.Equal(t, []NodeID{"node1", "node2", "node3"}, r.IDs())
	assert.Equal(t, []NodeID{"node1", "node3"}, r.Secondaries())
	assert.Equal(t, NodeID("node2"), r.Primary())
	assert.True(t, r.IsPrimary("node2"))
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := New("node1", testNodes()...)
	require.NoError(t, err)

	ep, ok := r.Lookup("node3")
	require.True(t, ok)
	assert.Equal(t, "postgres://n3", ep.DSN)

	_, ok = r.Lookup("node4")
	assert.False(t, ok)
	assert.False(t, r.Has("node4"))
}

func TestParse(t *testing.T) {
	node, err := Parse(" node1 = postgresql://u:p@localhost:5431/demodb?sslmode=disable ")
	require.NoError(t, err)
	assert.Equal(t, NodeID("node1"), node.ID)
	assert.Equal(t, "postgresql://u:p@localhost:5431/demodb?sslmode=disable", node.Endpoint.DSN)

	for _, bad := range []string{"node1", "=dsn", "node1="} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAll_SkipsBlank(t *testing.T) {
	list, err := ParseAll([]string{"a=1", "", "  ", "b=2"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, NodeID("b"), list[1].ID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.yaml")
	data := []byte(`
primary: node2
nodes:
  - id: node1
    dsn: postgres://n1
  - id: node2
    dsn: postgres://n2
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	r, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, NodeID("node2"), r.Primary())
	assert.Equal(t, []NodeID{"node1", "node2"}, r.IDs())
}

func TestLoadFile_Primary(t *testing.T) {
	const (
		withoutPrimary = "nodes:\n  - id: a\n    dsn: x\n  - id: b\n    dsn: y\n"
		withPrimary    = "primary: b\n" + withoutPrimary
	)

	tests := map[string]struct {
		data     string
		explicit NodeID
		want     NodeID
		wantErr  error
	}{
		"FirstNode":       {data: withoutPrimary, want: "a"},
		"Explicit":        {data: withoutPrimary, explicit: "b", want: "b"},
		"FromFile":        {data: withPrimary, want: "b"},
		"SameInBoth":      {data: withPrimary, explicit: "b", want: "b"},
		"Conflict":        {data: withPrimary, explicit: "a", wantErr: ErrPrimaryConflict},
		"UnknownExplicit": {data: withoutPrimary, explicit: "z", wantErr: ErrPrimaryNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := decodeRegistry([]byte(tt.data), tt.explicit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Primary())
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
}
