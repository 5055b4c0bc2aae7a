package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Middleware records the number and duration of requests. Requests are
// labelled with the route pattern rather than the path, so node ids and
// query strings do not blow up the label space.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func(start time.Time) {
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			c.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			c.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}(time.Now())

		next.ServeHTTP(ww, r)
	}

	return http.HandlerFunc(fn)
}
