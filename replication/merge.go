package replication

import (
	"golang.org/x/exp/slices"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

// Match is an item found by a search together with the nodes it was found on.
type Match struct {
	nodeclient.Item
	FoundOn []nodes.NodeID
}

type nodeItems struct {
	node  nodes.NodeID
	items []nodeclient.Item
}

// mergeByID folds per-node results into one list keyed by item id. The input
// must be in registry order: the first node that returned an id provides the
// fields of the merged record, later nodes are only added to FoundOn.
func mergeByID(results []nodeItems) []Match {
	merged := make([]Match, 0)
	index := make(map[int64]int)

	for _, res := range results {
		for _, item := range res.items {
			pos, ok := index[item.ID]
			if !ok {
				index[item.ID] = len(merged)
				merged = append(merged, Match{
					Item:    item,
					FoundOn: []nodes.NodeID{res.node},
				})

				continue
			}

			if !slices.Contains(merged[pos].FoundOn, res.node) {
				merged[pos].FoundOn = append(merged[pos].FoundOn, res.node)
			}
		}
	}

	return merged
}
