package replication

import (
	"context"
	"fmt"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/pgfanout/internal/multierror"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
)

type SearchResult struct {
	Matches []Match
	Failed  []nodes.NodeID
	Errors  *multierror.Error[nodes.NodeID]
}

// Err returns the combined per-node errors, or nil if every node answered.
func (r *SearchResult) Err() error {
	return r.Errors.Combined()
}

// Searcher queries every registered node and merges the matches.
type Searcher struct {
	conns          Conns
	logger         kitlog.Logger
	sink           Sink
	maxConcurrency int
}

func NewSearcher(conns Conns, logger kitlog.Logger, sink Sink, maxConcurrency int) *Searcher {
	if sink == nil {
		sink = nopSink{}
	}

	return &Searcher{
		conns:          conns,
		logger:         logger,
		sink:           sink,
		maxConcurrency: maxConcurrency,
	}
}

// Search looks for items whose name contains query, ignoring case. Nodes that
// cannot be reached or fail the query are listed in Failed and do not fail
// the search as a whole.
func (s *Searcher) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", nodeclient.ErrInvalidInput)
	}

	pattern := "%" + escapeLike(query) + "%"
	ids := s.conns.Registry().IDs()

	replies := fanOut(ctx, ids, s.maxConcurrency, func(ctx context.Context, id nodes.NodeID) ([]nodeclient.Item, error) {
		var items []nodeclient.Item

		err := s.conns.With(ctx, id, func(ctx context.Context, conn nodeclient.Conn) (err error) {
			items, err = conn.SearchItems(ctx, pattern)
			return err
		})

		return items, err
	})

	var (
		errs    = multierror.New[nodes.NodeID]()
		results = make([]nodeItems, 0, len(replies))
		failed  = make([]nodes.NodeID, 0)
	)

	for _, r := range replies {
		if r.err != nil {
			level.Warn(s.logger).Log("msg", "failed to search on node", "node_id", r.node, "err", r.err)
			s.sink.NodeFailed("search", r.node, nodeclient.KindOf(r.err))

			errs.Add(r.node, r.err)
			failed = append(failed, r.node)

			continue
		}

		results = append(results, nodeItems{node: r.node, items: r.reply})
	}

	return &SearchResult{
		Matches: mergeByID(results),
		Failed:  failed,
		Errors:  errs,
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
