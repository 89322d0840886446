package session

import (
	"encoding/json"

	"mesacirurgica/internal/game"
	"mesacirurgica/internal/session/message"
)

func handleTutorialNext(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	if err := session.Game.TutorialNext(); err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}
	msg := "Next tutorial step."
	if session.Game.State() == game.StatePlaying {
		msg = "Tutorial finished. Drag the instruments to the table!"
	}
	message.SendSuccess(session, session.State(), msg, nil)
	sendBoard(session)
	message.SendPromptInput(session)
}

func handleTutorialSkip(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	if err := session.Game.TutorialSkip(); err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}
	message.SendSuccess(session, session.State(), "Tutorial skipped.", nil)
	sendBoard(session)
	message.SendPromptInput(session)
}

func (h *GameHandler) registerTutorialHandlers() {
	h.tutorialRouter[cmdTutorialNext] = handleTutorialNext
	h.tutorialRouter[cmdTutorialSkip] = handleTutorialSkip
}
