package http

import (
	"errors"
	"net/http"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/logging"
	"github.com/goccy/go-json"
)

// APIHandler serves stateless REST reads over the same store the views use.
type APIHandler struct {
	service *app.CareerService
	quizID  string
}

func NewAPIHandler(service *app.CareerService, quizID string) *APIHandler {
	return &APIHandler{service: service, quizID: quizID}
}

type recommendationResponse struct {
	Recommendation domain.Recommendation `json:"recommendation"`
}

// Quiz returns the quiz definition.
func (h *APIHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.Quiz(r.Context(), h.quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *APIHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recommendationResponse{Recommendation: h.service.Recommendation(r.Context())})
}

// ClearRecommendation resets the recommendation to none.
func (h *APIHandler) ClearRecommendation(w http.ResponseWriter, r *http.Request) {
	h.service.ClearRecommendation(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Courses lists courses. ?stream=All disables the recommendation filter.
func (h *APIHandler) Courses(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.ListCourses(r.Context(), catalogQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Colleges lists colleges. ?q= searches name and state.
func (h *APIHandler) Colleges(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.ListColleges(r.Context(), catalogQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func catalogQuery(r *http.Request) app.CatalogQuery {
	q := r.URL.Query()
	return app.CatalogQuery{Stream: q.Get("stream"), Text: q.Get("q")}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownStream):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	default:
		logging.Error().Err(err).Msg("api request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Warn().Err(err).Msg("write response failed")
	}
}
