package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) transferManager(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	groupName := captured["groupName"]
	newManager := captured["newManager"]

	if err := h.Share.TransferManagerToUser(caller.UserName, groupName, newManager); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
