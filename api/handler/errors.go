package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/maxpoletaev/pgfanout/api/model"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/replication"
)

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, nodeclient.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, nodeclient.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, replication.ErrPrimaryUnreachable),
		errors.Is(err, replication.ErrPrimaryWriteFailed):
		return http.StatusInternalServerError
	case errors.Is(err, replication.ErrClosed),
		errors.Is(err, nodeclient.ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, model.ErrorResponse{Error: msg})
}
