package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/pgfanout/api/model"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
	"github.com/maxpoletaev/pgfanout/replication"
)

type ItemsHandler struct {
	writer   ItemWriter
	lister   ItemLister
	searcher ItemSearcher
	registry *nodes.Registry
	logger   kitlog.Logger
}

func NewItemsHandler(
	writer ItemWriter,
	lister ItemLister,
	searcher ItemSearcher,
	registry *nodes.Registry,
	logger kitlog.Logger,
) *ItemsHandler {
	return &ItemsHandler{
		writer:   writer,
		lister:   lister,
		searcher: searcher,
		registry: registry,
		logger:   logger,
	}
}

func (api *ItemsHandler) Register(r chi.Router) {
	r.Post("/items", api.createItem)
	r.Get("/items/search", api.searchItems)
	r.Get("/items/node/{nodeID}", api.listNodeItems)
}

func (api *ItemsHandler) createItem(w http.ResponseWriter, r *http.Request) {
	var params model.CreateItemParams
	if err := render.DecodeJSON(r.Body, &params); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := api.writer.Write(r.Context(), params.Name)
	if err != nil {
		status := statusOf(err)

		switch {
		case status == http.StatusBadRequest:
			renderError(w, r, status, "name is required")
		case errors.Is(err, replication.ErrPrimaryUnreachable), errors.Is(err, replication.ErrPrimaryWriteFailed):
			renderError(w, r, status, fmt.Sprintf("cannot write item to primary node (%s)", api.registry.Primary()))
		default:
			level.Error(api.logger).Log("msg", "failed to write item", "err", err)
			renderError(w, r, status, err.Error())
		}

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, model.CreateItemResponse{
		Message:       "item added (replicating)",
		Name:          res.Item.Name,
		ID:            res.Item.ID,
		PropagationID: res.Propagation.ID.String(),
	})
}

func (api *ItemsHandler) listNodeItems(w http.ResponseWriter, r *http.Request) {
	id := nodes.NodeID(chi.URLParam(r, "nodeID"))

	var limit int

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			renderError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}

		if n > replication.MaxListLimit {
			renderError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must not exceed %d", replication.MaxListLimit))
			return
		}

		limit = n
	}

	items, err := api.lister.ListRecent(r.Context(), id, limit)
	if err != nil {
		status := statusOf(err)

		switch nodeclient.KindOf(err) {
		case nodeclient.ErrUnknownNode:
			renderError(w, r, status, "invalid node id")
		case nodeclient.ErrUnreachable:
			renderError(w, r, status, fmt.Sprintf("cannot connect to %s", id))
		default:
			renderError(w, r, status, fmt.Sprintf("failed to read items from %s", id))
		}

		return
	}

	resp := make([]model.Item, len(items))
	for i, item := range items {
		resp[i] = toModelItem(item)
	}

	render.JSON(w, r, resp)
}

func (api *ItemsHandler) searchItems(w http.ResponseWriter, r *http.Request) {
	res, err := api.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		status := statusOf(err)
		if status == http.StatusBadRequest {
			renderError(w, r, status, "search query is required")
			return
		}

		renderError(w, r, status, err.Error())

		return
	}

	resp := model.SearchItemsResponse{
		Results: make([]model.SearchItem, len(res.Matches)),
	}

	for i, m := range res.Matches {
		foundOn := make([]string, len(m.FoundOn))
		for j, id := range m.FoundOn {
			foundOn[j] = string(id)
		}

		resp.Results[i] = model.SearchItem{
			ID:        m.ID,
			Name:      m.Name,
			CreatedAt: m.CreatedAt,
			FoundOn:   foundOn,
		}
	}

	for _, id := range res.Failed {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("cannot search on node: %s", id))
	}

	render.JSON(w, r, resp)
}

func toModelItem(item nodeclient.Item) model.Item {
	return model.Item{
		ID:        item.ID,
		Name:      item.Name,
		CreatedAt: item.CreatedAt,
	}
}
