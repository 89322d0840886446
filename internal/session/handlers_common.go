package session

import (
	"encoding/json"

	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/services/audit"
	"mesacirurgica/internal/session/message"
)

func handleViewBoard(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	sendBoard(session)
	message.SendPromptInput(session)
}

// handleReset volta ao tutorial com mesa vazia e lista embaralhada, de qualquer estado.
func handleReset(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	session.Game.Reset()
	h.recorder.Reset()
	h.publish(session, audit.KindReset, nil)
	h.log.Info("game reset", logging.String("session", session.ID))

	message.SendSuccess(session, session.State(), "The table was cleared and the list shuffled.", nil)
	sendBoard(session)
	message.SendPromptInput(session)
}

// registerCommonHandlers adiciona os comandos aceitos em qualquer estado.
func (h *GameHandler) registerCommonHandlers() {
	for _, router := range []map[string]CommandHandlerFunc{h.tutorialRouter, h.playRouter, h.completedRouter} {
		router[cmdViewBoard] = handleViewBoard
		router[cmdReset] = handleReset
	}
}
