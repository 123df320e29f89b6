package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"campuscare-admin/internal/models"
	"campuscare-admin/internal/query"
	"campuscare-admin/internal/reconcile"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token protected and CORS already allows any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client -> server messages.
type wsCommand struct {
	Type   string         `json:"type"`
	Filter query.Criteria `json:"filter"`
	ID     string         `json:"id"`
	Status models.Status  `json:"status"`
	Notes  string         `json:"notes"`
}

// Server -> client messages.
type wsState struct {
	Type       string             `json:"type"`
	IsLive     bool               `json:"isLive"`
	Loading    bool               `json:"loading"`
	Filter     query.Criteria     `json:"filter"`
	Complaints []models.Complaint `json:"complaints"`
	Stats      query.Stats        `json:"stats"`
	Detail     *models.Complaint  `json:"detail,omitempty"`
}

type wsResult struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SurfaceHandler gives every websocket connection its own controller, so no
// two connections share complaint state.
type SurfaceHandler struct {
	newController func() *reconcile.Controller
	log           *logrus.Logger
}

func NewSurfaceHandler(newController func() *reconcile.Controller, log *logrus.Logger) *SurfaceHandler {
	return &SurfaceHandler{newController: newController, log: log}
}

// --- GET /ws ---

func (h *SurfaceHandler) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	ctrl := h.newController()
	s := &surface{
		conn:    conn,
		ctrl:    ctrl,
		log:     h.log.WithField("surface", ctrl.ID()),
		changed: make(chan struct{}, 1),
		results: make(chan wsResult, 8),
		done:    make(chan struct{}),
	}
	s.run(r.Context())
}

type surface struct {
	conn    *websocket.Conn
	ctrl    *reconcile.Controller
	log     *logrus.Entry
	changed chan struct{}
	results chan wsResult
	done    chan struct{}

	mu       sync.Mutex
	criteria query.Criteria
}

func (s *surface) run(ctx context.Context) {
	s.ctrl.OnChange(func([]models.Complaint, bool) { s.signal() })
	s.ctrl.Start(ctx)
	s.log.Info("surface connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump()
	}()

	s.signal()
	s.readPump(ctx)

	s.ctrl.Dispose()
	close(s.done)
	wg.Wait()
	s.conn.Close()
	s.log.Info("surface disconnected")
}

// signal asks the writer for a fresh state frame. Pending requests coalesce.
func (s *surface) signal() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *surface) readPump(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd wsCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("websocket read error")
			}
			return
		}
		if res, ok := s.handle(ctx, cmd); ok {
			select {
			case s.results <- res:
			case <-s.done:
				return
			}
		}
		s.signal()
	}
}

// handle runs one command. Only commands that change data produce a result frame.
func (s *surface) handle(ctx context.Context, cmd wsCommand) (wsResult, bool) {
	switch cmd.Type {
	case "filter":
		s.mu.Lock()
		s.criteria = cmd.Filter
		s.mu.Unlock()
	case "open":
		if _, ok := s.ctrl.OpenDetail(cmd.ID); !ok {
			return wsResult{Type: "result", Action: cmd.Type, Error: "complaint not found"}, true
		}
	case "close":
		s.ctrl.CloseDetail()
	case "update_status":
		if err := s.ctrl.UpdateStatus(ctx, cmd.ID, cmd.Status, cmd.Notes); err != nil {
			_, msg := commandError(err)
			return wsResult{Type: "result", Action: cmd.Type, Error: msg}, true
		}
		return wsResult{Type: "result", Action: cmd.Type, OK: true, Message: "status updated"}, true
	case "insert_sample":
		if _, err := s.ctrl.InsertSample(ctx); err != nil {
			_, msg := commandError(err)
			return wsResult{Type: "result", Action: cmd.Type, Error: msg}, true
		}
		return wsResult{Type: "result", Action: cmd.Type, OK: true, Message: "Sample complaint added! It will appear in the list."}, true
	default:
		return wsResult{Type: "result", Action: cmd.Type, Error: "unknown command"}, true
	}
	return wsResult{}, false
}

func (s *surface) snapshot() wsState {
	state := s.ctrl.State()
	s.mu.Lock()
	criteria := s.criteria
	s.mu.Unlock()

	frame := wsState{
		Type:       "state",
		IsLive:     state.IsLive,
		Loading:    state.Loading,
		Filter:     criteria,
		Complaints: query.Filter(state.Records, criteria),
		Stats:      query.Aggregate(state.Records),
	}
	if d, ok := s.ctrl.Detail(); ok {
		frame.Detail = &d
	}
	return frame
}

func (s *surface) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var err error
		select {
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-s.changed:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteJSON(s.snapshot())
		case res := <-s.results:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteJSON(res)
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			s.log.WithError(err).Warn("websocket write error")
			// Unblocks readPump, which then tears the surface down.
			s.conn.Close()
			s.drain()
			return
		}
	}
}

// drain discards queued frames until the surface is torn down, so readPump
// never blocks on a writer that is gone.
func (s *surface) drain() {
	for {
		select {
		case <-s.done:
			return
		case <-s.results:
		case <-s.changed:
		}
	}
}
