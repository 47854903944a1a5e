// Package server streams sphere renders to browsers over WebSocket and
// serves one-shot frames over plain HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/engine/scene"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/internal/export"
	"github.com/Faultbox/texsphere/internal/logger"
)

// ErrNoTexture is returned for a textured request when no texture is loaded.
var ErrNoTexture = errors.New("no texture loaded")

// DefaultMaxDivisions bounds lat and lon when Options.MaxDivisions is zero.
const DefaultMaxDivisions = 512

// Options configures a Server.
type Options struct {
	Addr         string
	MaxViewport  int
	MaxDivisions int // Largest accepted lat or lon; zero means DefaultMaxDivisions
	WriteTimeout time.Duration

	Render renderer.Options
	Params scene.Params // starting parameters of every connection
	Width  int
	Height int
}

// Server renders on request. Each WebSocket connection owns a scene; the
// texture is shared read-only.
type Server struct {
	opts     Options
	texture  *texture.Texture
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New creates a server. tex may be nil, in which case textured requests
// are answered with an error.
func New(opts Options, tex *texture.Texture) *Server {
	if opts.MaxDivisions <= 0 {
		opts.MaxDivisions = DefaultMaxDivisions
	}
	return &Server{
		opts:    opts,
		texture: tex,
		log:     logger.Named("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Local tool, any page may connect
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /frame.png", s.handleFrame)
	mux.HandleFunc("GET /frame.svg", s.handleFrame)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then closes open
// WebSocket connections and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.closeConns()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("stopped")
	return nil
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

func (s *Server) initialView() view {
	return view{
		params: s.opts.Params,
		width:  s.opts.Width,
		height: s.opts.Height,
	}
}

// render validates v and renders it with sc.
func (s *Server) render(sc *scene.Scene, v view) (renderer.Output, error) {
	if err := v.validate(s.opts.MaxViewport, s.opts.MaxDivisions); err != nil {
		return renderer.Output{}, err
	}
	if v.textured {
		if s.texture == nil {
			return renderer.Output{}, ErrNoTexture
		}
		sc.SetTexture(s.texture)
	} else {
		sc.SetTexture(nil)
	}
	return sc.Update(v.params, v.width, v.height)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.track(conn)
	defer s.untrack(conn)

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Info("client connected")

	sc := scene.New(s.opts.Render)
	state := s.initialView()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			log.Info("client disconnected")
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			if err := s.writeJSON(conn, newErrorMessage(fmt.Errorf("decoding request: %w", err))); err != nil {
				return
			}
			continue
		}

		// Rejected updates leave the state as it was.
		next := state
		req.apply(&next)
		out, err := s.render(sc, next)
		if err != nil {
			log.Debug("request rejected", zap.Error(err))
			if err := s.writeJSON(conn, newErrorMessage(err)); err != nil {
				return
			}
			continue
		}
		state = next

		if err := s.writeOutput(conn, out); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) writeOutput(conn *websocket.Conn, out renderer.Output) error {
	if out.Mode != renderer.ModeTextured {
		return s.writeJSON(conn, newOutlineMessage(out))
	}

	s.setWriteDeadline(conn)
	wc, err := conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := export.EncodePNG(wc, out.Frame); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func (s *Server) writeJSON(conn *websocket.Conn, v any) error {
	s.setWriteDeadline(conn)
	return conn.WriteJSON(v)
}

func (s *Server) setWriteDeadline(conn *websocket.Conn) {
	if s.opts.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}
}

// handleFrame renders one frame from query parameters: PNG for /frame.png
// (requires a texture), SVG outlines for /frame.svg.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v := s.initialView()
	req.apply(&v)
	v.textured = r.URL.Path == "/frame.png"

	out, err := s.render(scene.New(s.opts.Render), v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if out.Mode == renderer.ModeTextured {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	if err := export.Write(w, out); err != nil {
		s.log.Warn("writing frame failed", zap.Error(err))
	}
}
