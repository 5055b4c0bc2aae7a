package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/maxpoletaev/pgfanout/api/model"
	"github.com/maxpoletaev/pgfanout/nodes"
)

type NodesHandler struct {
	registry *nodes.Registry
}

func NewNodesHandler(registry *nodes.Registry) *NodesHandler {
	return &NodesHandler{
		registry: registry,
	}
}

func (api *NodesHandler) Register(r chi.Router) {
	r.Get("/nodes", api.getNodes)
	r.Get("/health", api.getHealth)
}

func (api *NodesHandler) getNodes(w http.ResponseWriter, r *http.Request) {
	ids := api.registry.IDs()
	resp := make([]model.Node, len(ids))

	for i, id := range ids {
		resp[i] = model.Node{
			ID:      string(id),
			Primary: api.registry.IsPrimary(id),
		}
	}

	render.JSON(w, r, resp)
}

func (api *NodesHandler) getHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, model.HealthResponse{Status: "ok"})
}
