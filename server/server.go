package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"roastsim/conf"
	"roastsim/library"
	"roastsim/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	repo     library.Repository
	cfg      conf.SimulationConfig
}

func NewServer(addr string, upgrader websocket.Upgrader, repo library.Repository, cfg conf.SimulationConfig) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		repo:     repo,
		cfg:      cfg,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	hub := NewHub(conn, s.repo, s.cfg)
	log.WithField("remote", r.RemoteAddr).Info("客户端已连接")
	go hub.handleRequest(ctx)
	go hub.handleResponse(ctx)

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read message failed")
			}
			break
		}
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
			return
		}
	}
	log.WithField("remote", r.RemoteAddr).Info("客户端已断开")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("roastsim server listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
