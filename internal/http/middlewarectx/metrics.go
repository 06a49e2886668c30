package middlewarectx

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "health_tracker_http_requests_total",
		Help: "Количество HTTP-запросов по методу и шаблону маршрута.",
	},
	[]string{"method", "path"},
)

// MetricsMiddleware считает входящие запросы для Prometheus. Метка path
// использует шаблон маршрута ("/vitals/{id}"), а не сырой URL: метка из
// сырого пути давала бы отдельный временной ряд на каждый ID записи.
// Шаблон известен только после маршрутизации, поэтому счётчик
// инкрементируется после обработки запроса.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		requestsTotal.WithLabelValues(r.Method, path).Inc()
	})
}
