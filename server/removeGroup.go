package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) removeGroup(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	groupName := captured["groupName"]

	if err := h.Share.RemoveGroup(caller.UserName, groupName); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
