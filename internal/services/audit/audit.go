// Package audit publica os eventos das partidas (concluída, reiniciada) para quem quiser
// acompanhar o desempenho dos alunos fora do servidor.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mesacirurgica/internal/game/board"
)

var (
	ErrQueueFull = errors.New("audit: event queue full")
	ErrClosed    = errors.New("audit: publisher closed")
)

// Kind é o tipo do evento; também é o sufixo do subject.
type Kind string

const (
	KindCompleted Kind = "completed"
	KindReset     Kind = "reset"
)

type Event struct {
	Kind      Kind          `json:"kind"`
	SessionID string        `json:"sessionId"`
	Evaluator string        `json:"evaluator"`
	At        time.Time     `json:"at"`
	Report    *board.Report `json:"report,omitempty"`
}

// Subject devolve o subject NATS do evento sob o prefixo prefix.
func (e Event) Subject(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, e.Kind)
}

func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("audit: encode %s event: %w", e.Kind, err)
	}
	return data, nil
}

// Publisher entrega eventos. Publish não espera a rede: é chamado pela goroutine do Hub.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	// Healthy alimenta o /health.
	Healthy() error
	Close() error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Healthy() error                       { return nil }
func (nopPublisher) Close() error                         { return nil }

// NewNop descarta todos os eventos. Usado quando NATS está desligado.
func NewNop() Publisher { return nopPublisher{} }
