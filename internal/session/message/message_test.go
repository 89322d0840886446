package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/network"
)

type chanSender chan network.Message

func (c chanSender) Send(m network.Message) bool {
	select {
	case c <- m:
		return true
	default:
		return false
	}
}

func TestCreateSuccessResponse(t *testing.T) {
	m := CreateSuccessResponse("PLAYING", "ok", map[string]int{"placed": 3})
	assert.Equal(t, TypeSuccess, m.Type)
	assert.JSONEq(t, `{"state":"PLAYING","message":"ok","data":{"placed":3}}`, string(m.Payload))

	m = CreateSuccessResponse("TUTORIAL", "ok", nil)
	assert.JSONEq(t, `{"state":"TUTORIAL","message":"ok"}`, string(m.Payload))
}

func TestCreateError_Unencodable(t *testing.T) {
	m := CreateBoardState(make(chan int))
	assert.Equal(t, TypeError, m.Type)
	assert.Contains(t, string(m.Payload), "unencodable")
}

func TestSendErrorAndPrompt(t *testing.T) {
	out := make(chanSender, 2)
	SendErrorAndPrompt(out, "zone %s not found", "z9")

	first := <-out
	require.Equal(t, TypeError, first.Type)
	assert.JSONEq(t, `{"error":"zone z9 not found"}`, string(first.Payload))

	second := <-out
	assert.Equal(t, TypePromptInput, second.Type)
	assert.Empty(t, second.Payload)
}

func TestSend_FullSenderDoesNotBlock(t *testing.T) {
	out := make(chanSender, 1)
	SendErrorAndPrompt(out, "boom")
	SendPromptInput(out)

	require.Len(t, out, 1)
	assert.Equal(t, TypeError, (<-out).Type)
}
