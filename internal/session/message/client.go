// Package message monta as mensagens no sentido servidor -> cliente.
package message

import (
	"encoding/json"

	"mesacirurgica/internal/network"
)

// Tipos de mensagem enviados ao cliente.
const (
	TypeSuccess     = "RESPONSE_SUCCESS"
	TypeError       = "RESPONSE_ERROR"
	TypeBoardState  = "BOARD_STATE"
	TypeReport      = "REPORT"
	TypePromptInput = "PROMPT_INPUT"
)

// SuccessClientPayload carrega o estado explícito da partida.
type SuccessClientPayload struct {
	State   string `json:"state"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ErrorClientPayload struct {
	Error string `json:"error"`
}

func encode(msgType string, payload any) network.Message {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		payloadBytes, _ = json.Marshal(ErrorClientPayload{Error: "internal: unencodable payload"})
		msgType = TypeError
	}
	return network.Message{Type: msgType, Payload: payloadBytes}
}

func CreateSuccessResponse(state, message string, data any) network.Message {
	return encode(TypeSuccess, SuccessClientPayload{State: state, Message: message, Data: data})
}

func CreateErrorResponse(errorMsg string) network.Message {
	return encode(TypeError, ErrorClientPayload{Error: errorMsg})
}

// CreateBoardState envia o snapshot da mesa.
func CreateBoardState(snapshot any) network.Message {
	return encode(TypeBoardState, snapshot)
}

// CreateReport envia o relatório final.
func CreateReport(report any) network.Message {
	return encode(TypeReport, report)
}

// CreatePromptInputMessage diz ao terminal para mostrar o prompt. Sem payload.
func CreatePromptInputMessage() network.Message {
	return network.Message{Type: TypePromptInput}
}
