package session

import "mesacirurgica/internal/game/layout"

// Comandos aceitos do cliente.
const (
	cmdTutorialNext  = "TUTORIAL_NEXT"
	cmdTutorialSkip  = "TUTORIAL_SKIP"
	cmdPointerDown   = "POINTER_DOWN"
	cmdPointerMove   = "POINTER_MOVE"
	cmdPointerUp     = "POINTER_UP"
	cmdPointerCancel = "POINTER_CANCEL"
	cmdPlace         = "PLACE"
	cmdCheck         = "CHECK"
	cmdViewBoard     = "VIEW_BOARD"
	cmdViewReport    = "VIEW_REPORT"
	cmdReset         = "RESET"
)

type pointerPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (p pointerPayload) point() (layout.Point, bool) {
	if p.X == nil || p.Y == nil {
		return layout.Point{}, false
	}
	return layout.Point{X: *p.X, Y: *p.Y}, true
}

type pointerDownPayload struct {
	InstrumentID string `json:"instrumentId"`
	Source       string `json:"source"`
	pointerPayload
}

type placePayload struct {
	InstrumentID string `json:"instrumentId"`
	ZoneID       string `json:"zoneId"`
	Index        *int   `json:"index,omitempty"`
}
