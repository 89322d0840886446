package session

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"mesacirurgica/internal/clock"
	"mesacirurgica/internal/game"
	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/game/evaluator"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/network"
	"mesacirurgica/internal/services/audit"
	"mesacirurgica/internal/session/message"
)

// CommandHandlerFunc é a assinatura de todos os comandos do cliente.
type CommandHandlerFunc func(h *GameHandler, session *PlayerSession, payload json.RawMessage)

// Recorder recebe os eventos que viram métricas. *metrics.Game satisfaz.
type Recorder interface {
	SessionOpened(evaluator string)
	SessionClosed(evaluator string)
	Placement(correct bool)
	Checked(complete bool)
	Completed(evaluator string, timeSec, corrected int)
	Reset()
}

// Options reúne as dependências do GameHandler. Campos nulos recebem padrões inofensivos.
type Options struct {
	Catalog   *instrument.Catalog
	Clock     clock.Clock
	Logger    logging.Logger
	Recorder  Recorder
	Publisher audit.Publisher
	// Seed gera a semente do embaralhamento de cada partida.
	Seed func() uint64
}

type GameHandler struct {
	sessions map[string]*PlayerSession

	catalog   *instrument.Catalog
	clock     clock.Clock
	log       logging.Logger
	recorder  Recorder
	publisher audit.Publisher
	seed      func() uint64

	// Um roteador para cada estado da partida.
	tutorialRouter  map[string]CommandHandlerFunc
	playRouter      map[string]CommandHandlerFunc
	completedRouter map[string]CommandHandlerFunc
}

func NewGameHandler(opts Options) *GameHandler {
	h := &GameHandler{
		sessions:        make(map[string]*PlayerSession),
		catalog:         opts.Catalog,
		clock:           opts.Clock,
		log:             opts.Logger,
		recorder:        opts.Recorder,
		publisher:       opts.Publisher,
		seed:            opts.Seed,
		tutorialRouter:  make(map[string]CommandHandlerFunc),
		playRouter:      make(map[string]CommandHandlerFunc),
		completedRouter: make(map[string]CommandHandlerFunc),
	}
	if h.catalog == nil {
		h.catalog = instrument.MustLoad()
	}
	if h.clock == nil {
		h.clock = clock.NewSystem()
	}
	if h.log == nil {
		h.log = logging.NewNop()
	}
	if h.recorder == nil {
		h.recorder = nopRecorder{}
	}
	if h.publisher == nil {
		h.publisher = audit.NewNop()
	}
	if h.seed == nil {
		h.seed = func() uint64 { return uint64(time.Now().UnixNano()) }
	}

	h.registerTutorialHandlers()
	h.registerPlayHandlers()
	h.registerCommonHandlers()
	return h
}

// --- network.EventHandler, chamado pela goroutine do Hub ---

func (h *GameHandler) OnConnect(c *network.Client)                      { h.connect(c) }
func (h *GameHandler) OnDisconnect(c *network.Client)                   { h.disconnect(c) }
func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) { h.dispatch(c, msg) }

func (h *GameHandler) connect(c Conn) {
	ev := evaluator.FromQuery(c.Query)
	seed := h.seed()
	g := game.New(h.catalog, ev, h.clock, rand.New(rand.NewPCG(seed, seed>>1|1)))

	session := NewPlayerSession(c, g)
	h.sessions[c.ID()] = session
	h.recorder.SessionOpened(ev.ID)
	h.log.Info("session created",
		logging.String("session", session.ID),
		logging.String("evaluator", ev.ID),
		logging.Int("sessions", len(h.sessions)))

	message.SendSuccess(session, session.State(),
		"Connection successful! Welcome to the surgical table.",
		map[string]any{"sessionId": session.ID, "evaluator": ev})
	sendBoard(session)
	message.SendPromptInput(session)
}

func (h *GameHandler) disconnect(c Conn) {
	session, ok := h.sessions[c.ID()]
	if !ok {
		return
	}
	delete(h.sessions, c.ID())
	h.recorder.SessionClosed(session.Game.Evaluator().ID)
	h.log.Info("session removed",
		logging.String("session", session.ID),
		logging.String("state", session.State()),
		logging.Int("sessions", len(h.sessions)))
}

// dispatch escolhe o roteador pelo estado da partida e executa o comando.
func (h *GameHandler) dispatch(c Conn, msg network.Message) {
	session, ok := h.sessions[c.ID()]
	if !ok {
		return
	}

	var router map[string]CommandHandlerFunc
	switch session.Game.State() {
	case game.StateTutorial:
		router = h.tutorialRouter
	case game.StatePlaying:
		router = h.playRouter
	case game.StateCompleted:
		router = h.completedRouter
	default:
		message.SendErrorAndPrompt(session, "Invalid state of session: %s", session.State())
		return
	}

	handler, found := router[msg.Type]
	if !found {
		message.SendErrorAndPrompt(session, "Unknown or invalid command for current state %s: %s", session.State(), msg.Type)
		return
	}
	handler(h, session, msg.Payload)
}

func (h *GameHandler) publish(session *PlayerSession, kind audit.Kind, rep *board.Report) {
	err := h.publisher.Publish(context.Background(), audit.Event{
		Kind:      kind,
		SessionID: session.ID,
		Evaluator: session.Game.Evaluator().ID,
		At:        h.clock.Now(),
		Report:    rep,
	})
	if err != nil {
		h.log.Warn("failed to publish game event",
			logging.String("session", session.ID),
			logging.String("kind", string(kind)),
			logging.Err(err))
	}
}

func sendBoard(session *PlayerSession) {
	message.SendBoardState(session, session.Game.Snapshot())
}

type nopRecorder struct{}

func (nopRecorder) SessionOpened(string)       {}
func (nopRecorder) SessionClosed(string)       {}
func (nopRecorder) Placement(bool)             {}
func (nopRecorder) Checked(bool)               {}
func (nopRecorder) Completed(string, int, int) {}
func (nopRecorder) Reset()                     {}
