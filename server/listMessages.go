package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/mapping"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) listMessages(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	messages, err := h.Share.ListMessages(caller.UserName)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.MessageListResponse{Messages: mapping.MapMessagesToProtocol(messages)})
	return nil
}
