package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) transferSiteAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	newAdmin := captured["newAdmin"]

	if err := h.Share.TransferSiteAdminToUser(caller.UserName, newAdmin); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
