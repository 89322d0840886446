package network

import (
	"context"

	"mesacirurgica/internal/logging"
)

// clientMessage empacota uma mensagem com o cliente que a enviou.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e entrega os eventos ao handler,
// um de cada vez, na sua própria goroutine.
type Hub struct {
	// Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	done       chan struct{}

	handler EventHandler
	log     logging.Logger
}

func NewHub(handler EventHandler, log logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		done:       make(chan struct{}),
		handler:    handler,
		log:        log,
	}
}

// join, leave e deliver desistem quando o Hub já parou.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) deliver(m clientMessage) bool {
	select {
	case h.incoming <- m:
		return true
	case <-h.done:
		return false
	}
}

// Run processa eventos até ctx ser cancelado. Ao sair, fecha todos os clientes.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			c.close()
			h.handler.OnDisconnect(c)
		}
		h.clients = map[*Client]bool{}
		h.log.Info("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("client registered",
				logging.String("client", c.ID()),
				logging.String("remote", c.RemoteAddr()),
				logging.Int("clients", len(h.clients)))
			h.handler.OnConnect(c)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				// Fechar send é o sinal para a writeLoop do cliente parar.
				c.close()
				h.log.Debug("client unregistered", logging.String("client", c.ID()), logging.Int("clients", len(h.clients)))
				h.handler.OnDisconnect(c)
			}

		case m := <-h.incoming:
			// O cliente pode ter saído entre a leitura e a entrega.
			if h.clients[m.client] {
				h.handler.OnMessage(m.client, m.msg)
			}
		}
	}
}
