package network

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"mesacirurgica/internal/logging"
)

// Server promove conexões HTTP para WebSocket e as entrega ao Hub.
type Server struct {
	hub      *Hub
	log      logging.Logger
	upgrader websocket.Upgrader
}

func NewServer(handler EventHandler, log logging.Logger) *Server {
	return &Server{
		hub: NewHub(handler, log.Named("hub")),
		log: log,
		upgrader: websocket.Upgrader{
			// Qualquer origem: a página pode ser servida de outro host.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run executa o Hub até ctx ser cancelado.
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// ServeHTTP atende o upgrade em /ws. Os parâmetros da URL ficam disponíveis em Client.Query.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", logging.String("remote", r.RemoteAddr), logging.Err(err))
		return
	}

	client := newClient(conn, s.hub, r.URL.Query(), s.log)
	if !s.hub.join(client) {
		conn.Close()
		return
	}

	go client.writeLoop()
	go client.readLoop()
}

// Register monta o endpoint WebSocket no mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.Handle("/ws", s)
}
