package handler

//go:generate mockgen -source=facilities.go -destination=mock/facilities_mock.go -package=mock

import (
	"context"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
	"github.com/maxpoletaev/pgfanout/replication"
)

type ItemWriter interface {
	Write(ctx context.Context, name string) (*replication.WriteResult, error)
}

type ItemLister interface {
	ListRecent(ctx context.Context, id nodes.NodeID, limit int) ([]nodeclient.Item, error)
}

type ItemSearcher interface {
	Search(ctx context.Context, query string) (*replication.SearchResult, error)
}
