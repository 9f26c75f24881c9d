package mapping

import (
	"time"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

// MapMessageToProtocol converts a stored notification to its wire form.
func MapMessageToProtocol(m models.Message) protocol.Message {
	return protocol.Message{
		Recipient:   m.RecipientName,
		Body:        m.Body,
		CreatedBy:   m.CreatedBy,
		CreatedDate: m.CreatedDate.UTC().Format(time.RFC3339),
	}
}

// MapMessagesToProtocol converts a slice of stored notifications.
func MapMessagesToProtocol(msgs []models.Message) []protocol.Message {
	out := make([]protocol.Message, len(msgs))
	for i, m := range msgs {
		out[i] = MapMessageToProtocol(m)
	}
	return out
}
