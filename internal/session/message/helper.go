package message

import (
	"fmt"

	"mesacirurgica/internal/network"
)

// MessageSender é qualquer destino de mensagens: o network.Client em produção,
// um canal simples nos testes. Send não bloqueia; false quando a mensagem foi descartada.
type MessageSender interface {
	Send(msg network.Message) bool
}

// SendError envia apenas uma mensagem de erro.
func SendError(sender MessageSender, format string, args ...any) {
	sender.Send(CreateErrorResponse(fmt.Sprintf(format, args...)))
}

// SendErrorAndPrompt envia o erro seguido do prompt.
func SendErrorAndPrompt(sender MessageSender, format string, args ...any) {
	sender.Send(CreateErrorResponse(fmt.Sprintf(format, args...)))
	sender.Send(CreatePromptInputMessage())
}

func SendSuccess(sender MessageSender, state, message string, data any) {
	sender.Send(CreateSuccessResponse(state, message, data))
}

func SendBoardState(sender MessageSender, snapshot any) {
	sender.Send(CreateBoardState(snapshot))
}

func SendReport(sender MessageSender, report any) {
	sender.Send(CreateReport(report))
}

func SendPromptInput(sender MessageSender) {
	sender.Send(CreatePromptInputMessage())
}
