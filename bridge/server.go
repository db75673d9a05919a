// Package bridge mirrors application events to browser frontends over a
// websocket and serves the live preview page.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hypernotic/events"
	"hypernotic/metric"
	"hypernotic/preview"
)

const (
	DefaultShutdownTimeout = 2 * time.Second
	DefaultReadTimeout     = 10 * time.Second

	clientQueue  = 32
	writeTimeout = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server is the frontend bridge.
type Server struct {
	addr            string
	renderer        *preview.Renderer
	log             zerolog.Logger
	gatherer        prometheus.Gatherer
	shutdownTimeout time.Duration
	upgrader        websocket.Upgrader

	menuSub   *events.Subscription
	docSub    *events.Subscription
	closeOnce sync.Once

	mu         sync.RWMutex
	clients    map[*client]struct{}
	lastRender RenderMessage
	lastSource string
	running    bool
}

type Option func(*Server)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMetrics mounts /metrics for the given registry.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New subscribes to the bus right away so no event published after New
// returns is missed.
func New(addr string, bus *events.Bus, renderer *preview.Renderer, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		renderer:        renderer,
		log:             zerolog.Nop(),
		shutdownTimeout: DefaultShutdownTimeout,
		clients:         make(map[*client]struct{}),
		lastRender:      RenderMessage{Type: MessageTypeRender},
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHost,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "bridge").Logger()
	s.menuSub = bus.Subscribe(events.MenuEvent)
	s.docSub = bus.Subscribe(events.DocumentChanged)
	return s
}

// sameHost accepts connections from pages served by the bridge itself.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	if s.gatherer != nil {
		mux.Handle("/metrics", metric.HandlerFor(s.gatherer))
	}
	return mux
}

func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Clients reports the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.Close()
		return fmt.Errorf("bridge listen: %w", err)
	}
	return s.ServeListener(ctx, ln)
}

func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Run(gCtx)
	})

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		s.log.Info().Str("addr", ln.Addr().String()).Msg("bridge listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("bridge shutdown")
		}
		s.closeClients()
		return nil
	})

	return g.Wait()
}

// Close drops the bus subscriptions taken by New. Serve and Run call it on
// their way out; a server that is never run must be closed by its owner.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.menuSub.Close()
		s.docSub.Close()
	})
}

func (s *Server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Run forwards bus events to the connected clients until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.menuSub.C():
			if !ok {
				return nil
			}
			id, _ := ev.Payload.(string)
			s.broadcast(MenuMessage{Type: MessageTypeMenu, Payload: id})
		case ev, ok := <-s.docSub.C():
			if !ok {
				return nil
			}
			doc, ok := ev.Payload.(events.Document)
			if !ok {
				continue
			}
			s.render(doc)
		}
	}
}

func (s *Server) render(doc events.Document) {
	fragment, err := s.renderer.Fragment([]byte(doc.Content))
	if err != nil {
		s.log.Warn().Err(err).Str("file", doc.Name).Msg("render failed")
		return
	}

	s.mu.Lock()
	s.lastRender.Rev++
	s.lastRender.HTML = fragment
	s.lastRender.Filename = doc.Name
	s.lastSource = doc.Content
	msg := s.lastRender
	s.mu.Unlock()

	s.broadcast(msg)
}

func (s *Server) broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("encode message")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.log.Warn().Msg("dropping slow client")
			s.dropLocked(c)
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.RLock()
	title, source := s.lastRender.Filename, s.lastSource
	s.mu.RUnlock()

	page, err := s.renderer.Page([]byte(source), title)
	if err != nil {
		s.log.Warn().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientQueue)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.lastRender.Rev > 0 {
		if data, err := json.Marshal(s.lastRender); err == nil {
			c.send <- data
		}
	}
	s.mu.Unlock()

	go s.writeLoop(c)

	// Block here until the browser goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	s.dropLocked(c)
	s.mu.Unlock()
}

func (s *Server) writeLoop(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (s *Server) dropLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		s.dropLocked(c)
	}
}
