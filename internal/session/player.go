package session

import (
	"github.com/google/uuid"

	"mesacirurgica/internal/game"
	"mesacirurgica/internal/network"
)

// Conn é o que a sessão precisa da conexão do aluno. *network.Client satisfaz.
type Conn interface {
	ID() string
	Query(key string) string
	Send(msg network.Message) bool
}

// PlayerSession é um aluno conectado e a sua partida.
type PlayerSession struct {
	ID     string
	Client Conn
	Game   *game.Game
}

func NewPlayerSession(client Conn, g *game.Game) *PlayerSession {
	return &PlayerSession{
		ID:     uuid.NewString(),
		Client: client,
		Game:   g,
	}
}

// Send permite usar a sessão como message.MessageSender.
func (s *PlayerSession) Send(msg network.Message) bool {
	return s.Client.Send(msg)
}

// State é o estado da partida, usado para escolher o roteador.
func (s *PlayerSession) State() string {
	return string(s.Game.State())
}
