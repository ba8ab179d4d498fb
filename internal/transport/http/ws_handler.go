package http

import (
	"context"
	"errors"
	"net/http"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/logging"
	"career-guidance-service/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	viewQuiz     = "quiz"
	viewCourses  = "courses"
	viewColleges = "colleges"
)

// WSHandler mounts one view per WebSocket connection. Closing the
// connection unmounts the view and cancels its timers.
type WSHandler struct {
	service  *app.CareerService
	quizID   string
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.CareerService, quizID string) *WSHandler {
	return &WSHandler{
		service: service,
		quizID:  quizID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option *int `json:"option"`
}

type queryPayload struct {
	Text string `json:"text"`
}

type streamPayload struct {
	Stream string `json:"stream"`
}

type completePayload struct {
	Recommendation domain.Recommendation `json:"recommendation"`
}

type navigatePayload struct {
	Target string `json:"target"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wsSession serializes writes to one connection. push never blocks past connection teardown.
type wsSession struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	send   chan outboundMessage[any]
	log    zerolog.Logger
}

func (s *wsSession) push(typ string, payload any) {
	select {
	case s.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-s.ctx.Done():
	}
}

func (s *wsSession) pushError(message string) {
	s.push("error", errorPayload{Message: message})
}

func (s *wsSession) writeLoop(done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case msg := <-s.send:
			if err := s.conn.WriteJSON(msg); err != nil {
				s.log.Debug().Err(err).Msg("ws write error")
				s.cancel()
				return
			}
		case <-s.ctx.Done():
			return
		}
	}
}

// readLoop dispatches inbound messages until the connection fails or the session ends.
func (s *wsSession) readLoop(handle func(inboundMessage)) {
	for {
		var inbound inboundMessage
		if err := s.conn.ReadJSON(&inbound); err != nil {
			return
		}
		handle(inbound)
	}
}

// ServeWS upgrades HTTP requests to websockets and mounts the requested view.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = viewQuiz
	}
	if view != viewQuiz && view != viewCourses && view != viewColleges {
		http.Error(w, "view must be quiz, courses or colleges", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &wsSession{
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		send:   make(chan outboundMessage[any], 16),
		log:    logging.With("ws").With().Str("view", view).Str("conn_id", uuid.NewString()).Logger(),
	}

	// unblock ReadJSON once the session ends from the write side
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	writerDone := make(chan struct{})
	go sess.writeLoop(writerDone)

	metrics.WSConnectionsActive.WithLabelValues(view).Inc()
	defer metrics.WSConnectionsActive.WithLabelValues(view).Dec()
	sess.log.Debug().Msg("view mounted")

	switch view {
	case viewQuiz:
		h.serveQuiz(sess)
	case viewCourses:
		catalogView, err := h.service.CourseView(ctx)
		if err != nil {
			sess.pushError(err.Error())
			break
		}
		serveCatalog(sess, catalogView)
	case viewColleges:
		catalogView, err := h.service.CollegeView(ctx)
		if err != nil {
			sess.pushError(err.Error())
			break
		}
		serveCatalog(sess, catalogView)
	}

	cancel()
	<-writerDone
	sess.log.Debug().Msg("view unmounted")
}

func (h *WSHandler) serveQuiz(sess *wsSession) {
	engine, err := h.service.NewQuiz(sess.ctx, h.quizID, app.QuizCallbacks{
		OnChange: func(state domain.QuizState) {
			sess.push("state", state)
		},
		OnComplete: func(rec domain.Recommendation) {
			sess.push("complete", completePayload{Recommendation: rec})
		},
		OnExploreCourses: func() {
			sess.push("navigate", navigatePayload{Target: viewCourses})
		},
		OnBrowseColleges: func() {
			sess.push("navigate", navigatePayload{Target: viewColleges})
		},
	})
	if err != nil {
		sess.pushError(err.Error())
		return
	}
	defer engine.Close()

	sess.push("state", engine.State())

	sess.readLoop(func(inbound inboundMessage) {
		switch inbound.Type {
		case "start":
			engine.Start(sess.ctx)
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == nil {
				sess.pushError("invalid select payload")
				return
			}
			if err := engine.SelectOption(sess.ctx, *payload.Option); err != nil {
				if errors.Is(err, domain.ErrInvalidOption) {
					sess.log.Warn().Err(err).Msg("rejected selection")
				}
				sess.pushError(err.Error())
			}
		case "back":
			if !engine.GoBack() {
				sess.pushError("cannot go back from here")
			}
		case "next":
			if !engine.GoForward(sess.ctx) {
				sess.pushError("select an option first")
			}
		case "exploreCourses":
			if !engine.ExploreCourses() {
				sess.pushError("finish the quiz first")
			}
		case "browseColleges":
			if !engine.BrowseColleges() {
				sess.pushError("finish the quiz first")
			}
		default:
			sess.pushError("unsupported message type")
		}
	})
}

func serveCatalog[T domain.CatalogEntry](sess *wsSession, view *app.CatalogView[T]) {
	defer view.Close()

	updates := view.Watch(sess.ctx)
	forwardDone := make(chan struct{})
	go func() {
		defer close(forwardDone)
		for snap := range updates {
			sess.push("catalog", snap)
		}
	}()

	sess.readLoop(func(inbound inboundMessage) {
		switch inbound.Type {
		case "query":
			var payload queryPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sess.pushError("invalid query payload")
				return
			}
			view.SetQuery(sess.ctx, payload.Text)
		case "selectStream":
			var payload streamPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sess.pushError("invalid stream payload")
				return
			}
			if !view.SelectStream(sess.ctx, payload.Stream) {
				sess.pushError("unknown stream")
			}
		case "clear":
			view.Clear(sess.ctx)
		default:
			sess.pushError("unsupported message type")
		}
	})

	sess.cancel()
	<-forwardDone
}
