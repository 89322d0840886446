package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"mesacirurgica/internal/game"
	"mesacirurgica/internal/game/drag"
	"mesacirurgica/internal/game/layout"
	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/network"
	"mesacirurgica/internal/services/audit"
	"mesacirurgica/internal/session/message"
)

func decode(msgType string, payload json.RawMessage, v any) error {
	return network.Message{Type: msgType, Payload: payload}.Decode(v)
}

func handlePointerDown(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req pointerDownPayload
	if err := decode(cmdPointerDown, payload, &req); err != nil || req.InstrumentID == "" {
		message.SendErrorAndPrompt(session, "Invalid payload: 'instrumentId', 'source', 'x' and 'y' are required.")
		return
	}
	p, ok := req.point()
	if !ok {
		message.SendErrorAndPrompt(session, "Invalid payload: 'x' and 'y' are required.")
		return
	}
	src, err := drag.ParseSource(req.Source)
	if err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}

	if err := session.Game.PointerDown(req.InstrumentID, src, p); err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}
	sendBoard(session)
}

// handlePointerMove só atualiza a prévia. Sem arraste ativo, o movimento é ignorado.
func handlePointerMove(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req pointerPayload
	if err := decode(cmdPointerMove, payload, &req); err != nil {
		message.SendError(session, "Invalid payload: 'x' and 'y' are required.")
		return
	}
	p, ok := req.point()
	if !ok {
		message.SendError(session, "Invalid payload: 'x' and 'y' are required.")
		return
	}
	if err := session.Game.PointerMove(p); err != nil && !errors.Is(err, drag.ErrNoDrag) {
		message.SendError(session, "%v", err)
	}
}

func handlePointerUp(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req pointerPayload
	if err := decode(cmdPointerUp, payload, &req); err != nil {
		message.SendErrorAndPrompt(session, "Invalid payload: 'x' and 'y' are required.")
		return
	}
	p, ok := req.point()
	if !ok {
		message.SendErrorAndPrompt(session, "Invalid payload: 'x' and 'y' are required.")
		return
	}
	wasCompleted := session.Game.State() == game.StateCompleted
	d, err := session.Game.PointerUp(p)
	h.finishDrop(session, d, err, wasCompleted)
}

// handlePointerCancel resolve na última posição conhecida; o payload é opcional.
func handlePointerCancel(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	wasCompleted := session.Game.State() == game.StateCompleted
	d, err := session.Game.PointerCancel()
	h.finishDrop(session, d, err, wasCompleted)
}

func handlePlace(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req placePayload
	if err := decode(cmdPlace, payload, &req); err != nil || req.InstrumentID == "" {
		message.SendErrorAndPrompt(session, "Invalid payload: 'instrumentId' is required; 'zoneId' empty drops outside the table.")
		return
	}
	wasCompleted := session.Game.State() == game.StateCompleted
	d, err := session.Game.Place(req.InstrumentID, req.ZoneID, req.Index)
	h.finishDrop(session, d, err, wasCompleted)
}

func (h *GameHandler) finishDrop(session *PlayerSession, d drag.Drop, err error, wasCompleted bool) {
	if errors.Is(err, drag.ErrNoDrag) {
		h.log.Debug("pointer release without drag", logging.String("session", session.ID))
		return
	}
	if err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}

	if d.Action == drag.ActionAdded || d.Action == drag.ActionMoved {
		h.recorder.Placement(d.Placement.Correct)
	}

	msg := h.describeDrop(d)
	if wasCompleted && session.Game.State() == game.StatePlaying {
		msg += " The report was discarded; check again when you are done."
	}
	message.SendSuccess(session, session.State(), msg, map[string]any{
		"action":       d.Action,
		"instrumentId": d.Placement.InstrumentID,
		"from":         d.Placement.From,
		"to":           d.Placement.To,
	})
	sendBoard(session)
	message.SendPromptInput(session)
}

func (h *GameHandler) describeDrop(d drag.Drop) string {
	label := d.Placement.InstrumentID
	if inst, err := h.catalog.Get(label); err == nil {
		label = inst.Label()
	}
	zoneLabel := func(id string) string {
		if z, err := layout.ZoneByID(id); err == nil {
			return z.Label
		}
		return id
	}

	switch d.Action {
	case drag.ActionAdded:
		return fmt.Sprintf("%s placed in %s.", label, zoneLabel(d.Placement.To))
	case drag.ActionMoved:
		return fmt.Sprintf("%s moved from %s to %s.", label, zoneLabel(d.Placement.From), zoneLabel(d.Placement.To))
	case drag.ActionReordered:
		return fmt.Sprintf("%s reordered inside %s.", label, zoneLabel(d.Placement.To))
	case drag.ActionRemoved:
		return fmt.Sprintf("%s returned to the list.", label)
	default:
		return "Nothing changed."
	}
}

func handleCheck(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	wasCompleted := session.Game.State() == game.StateCompleted
	res, err := session.Game.Check()
	if err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}
	h.recorder.Checked(res.Complete)

	if !res.Complete {
		snap := session.Game.Snapshot()
		msg := fmt.Sprintf("%d of %d instruments placed. Zones with errors: %d.", snap.Placed, snap.Total, len(res.ZoneErrors))
		if !res.AllPlaced {
			msg += " Place every instrument before finishing."
		}
		message.SendSuccess(session, session.State(), msg, map[string]any{"zoneErrors": res.ZoneErrors})
		sendBoard(session)
		message.SendPromptInput(session)
		return
	}

	rep := res.Report
	// Checar de novo uma mesa concluída devolve o mesmo relatório: conta uma vez só.
	if !wasCompleted {
		h.recorder.Completed(rep.Evaluator, rep.TimeSec, rep.CorrectedItems)
		h.publish(session, audit.KindCompleted, rep)
		h.log.Info("game completed",
			logging.String("session", session.ID),
			logging.String("report", rep.ID),
			logging.Int("time_sec", rep.TimeSec),
			logging.Int("corrected", rep.CorrectedItems))
	}

	message.SendSuccess(session, session.State(),
		fmt.Sprintf("Table complete! %d/%d correct in %ds.", rep.CorrectItems, rep.TotalItems, rep.TimeSec), nil)
	message.SendReport(session, rep)
	sendBoard(session)
	message.SendPromptInput(session)
}

func handleViewReport(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	rep, err := session.Game.Report()
	if err != nil {
		message.SendErrorAndPrompt(session, "%v", err)
		return
	}
	message.SendReport(session, rep)
	message.SendPromptInput(session)
}

// registerPlayHandlers popula os roteadores de Playing e Completed.
// Completed aceita os mesmos comandos e ainda VIEW_REPORT.
func (h *GameHandler) registerPlayHandlers() {
	for _, router := range []map[string]CommandHandlerFunc{h.playRouter, h.completedRouter} {
		router[cmdPointerDown] = handlePointerDown
		router[cmdPointerMove] = handlePointerMove
		router[cmdPointerUp] = handlePointerUp
		router[cmdPointerCancel] = handlePointerCancel
		router[cmdPlace] = handlePlace
		router[cmdCheck] = handleCheck
	}
	h.completedRouter[cmdViewReport] = handleViewReport
}
