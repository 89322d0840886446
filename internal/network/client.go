package network

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mesacirurgica/internal/logging"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Frequência dos pings. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

// Client é um aluno conectado, visto pelo servidor.
type Client struct {
	id    string
	conn  *websocket.Conn
	hub   *Hub
	query url.Values
	log   logging.Logger

	// O Hub coloca as mensagens aqui e a writeLoop as envia.
	send chan Message
	// dropped só é lido e escrito pela goroutine do Hub.
	dropped bool
}

func newClient(conn *websocket.Conn, hub *Hub, query url.Values, log logging.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:    id,
		conn:  conn,
		hub:   hub,
		query: query,
		log:   log.With(logging.String("client", id), logging.String("remote", conn.RemoteAddr().String())),
		send:  make(chan Message, sendBuffer),
	}
}

func (c *Client) ID() string { return c.id }

// Query devolve um parâmetro da URL de conexão, ex: ?e=otto.
func (c *Client) Query(key string) string {
	return c.query.Get(key)
}

// RemoteAddr é o endereço do navegador ou terminal conectado.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Send enfileira msg sem bloquear o Hub. Com o buffer cheio o cliente é derrubado:
// a conexão fecha e a readLoop o desregistra. Mensagens seguintes são descartadas.
func (c *Client) Send(msg Message) bool {
	if c.dropped {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.dropped = true
		c.log.Warn("send buffer full, dropping client", logging.Int("buffer", cap(c.send)))
		c.conn.Close()
		return false
	}
}

// close encerra o canal send; a writeLoop termina ao esvaziá-lo.
func (c *Client) close() {
	c.dropped = true
	close(c.send)
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected client error", logging.Err(err))
			}
			return
		}
		if !c.hub.deliver(clientMessage{client: c, msg: msg}) {
			return
		}
	}
}

// writeLoop bombeia mensagens do canal send para a conexão.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// Canal fechado pelo Hub: o cliente foi desregistrado.
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Warn("write failed", logging.Err(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
