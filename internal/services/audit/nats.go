package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"mesacirurgica/internal/logging"
)

// Config da conexão NATS. URL vazia desliga a publicação.
type Config struct {
	URL           string        `mapstructure:"url"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// conn é o pedaço de *nats.Conn que o publisher usa.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
	IsConnected() bool
}

const queueSize = 64

// natsPublisher enfileira os eventos e os envia numa goroutine própria,
// para que um NATS lento não segure o Hub.
type natsPublisher struct {
	nc      conn
	prefix  string
	timeout time.Duration
	log     logging.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

// Connect abre a conexão e devolve o publisher.
func Connect(cfg Config, log logging.Logger) (Publisher, error) {
	if cfg.URL == "" {
		return NewNop(), nil
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name("mesa-cirurgica"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", logging.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", logging.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("audit: connect to nats at %s: %w", cfg.URL, err)
	}
	log.Info("nats connected", logging.String("url", nc.ConnectedUrl()))
	return newNatsPublisher(nc, cfg, log), nil
}

func newNatsPublisher(nc conn, cfg Config, log logging.Logger) *natsPublisher {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "mesa.games"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	p := &natsPublisher{
		nc:      nc,
		prefix:  cfg.SubjectPrefix,
		timeout: cfg.Timeout,
		log:     log,
		queue:   make(chan Event, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish só enfileira. Fila cheia descarta o evento com ErrQueueFull.
func (p *natsPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queue <- e:
		return nil
	default:
		return fmt.Errorf("%w: %s event for session %s", ErrQueueFull, e.Kind, e.SessionID)
	}
}

func (p *natsPublisher) run() {
	defer close(p.done)
	for e := range p.queue {
		if err := p.send(e); err != nil {
			p.log.Warn("failed to publish game event", logging.String("session", e.SessionID), logging.Err(err))
		}
	}
}

func (p *natsPublisher) send(e Event) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	subject := e.Subject(p.prefix)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("audit: publish %s: %w", subject, err)
	}
	if e.Kind == KindCompleted {
		// Relatórios não podem ficar só no buffer do cliente.
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.nc.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("audit: flush %s: %w", subject, err)
		}
	}
	p.log.Debug("event published", logging.String("subject", subject), logging.String("session", e.SessionID))
	return nil
}

// Healthy falha enquanto a conexão estiver caída.
func (p *natsPublisher) Healthy() error {
	if !p.nc.IsConnected() {
		return errors.New("nats not connected")
	}
	return nil
}

// Close envia o que ainda está na fila e drena a conexão.
func (p *natsPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.nc.Drain()
}
