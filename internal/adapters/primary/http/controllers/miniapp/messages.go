package miniapp

import "github.com/admin/tg-bots/astro-miniapp/internal/domain"

type MessageType string

const (
	// сервер -> клиент
	MessageSnapshot MessageType = "snapshot"
	MessagePatch    MessageType = "patch"
	MessageError    MessageType = "error"

	// клиент -> сервер
	MessageAction MessageType = "action"
)

// OutboundMessage - кадр, который уходит в браузер
type OutboundMessage struct {
	Type    MessageType    `json:"type"`
	Patches []domain.Patch `json:"patches,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// InboundMessage - кадр от браузера
type InboundMessage struct {
	Type   MessageType    `json:"type"`
	Action *domain.Action `json:"action,omitempty"`
}

func snapshotMessage(patches []domain.Patch) OutboundMessage {
	return OutboundMessage{Type: MessageSnapshot, Patches: patches}
}

func patchMessage(patches []domain.Patch) OutboundMessage {
	return OutboundMessage{Type: MessagePatch, Patches: patches}
}

func errorMessage(err error) OutboundMessage {
	return OutboundMessage{Type: MessageError, Error: err.Error()}
}
