package http

import (
	"net/http"

	"career-guidance-service/internal/app"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the WebSocket views, the REST endpoints, health and metrics.
func NewRouter(service *app.CareerService, quizID string) http.Handler {
	ws := NewWSHandler(service, quizID)
	api := NewAPIHandler(service, quizID)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/quiz", api.Quiz)
		r.Get("/recommendation", api.Recommendation)
		r.Delete("/recommendation", api.ClearRecommendation)
		r.Get("/courses", api.Courses)
		r.Get("/colleges", api.Colleges)
	})
	return r
}
