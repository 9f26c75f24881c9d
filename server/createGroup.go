package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

func (h AppServer) createGroup(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	var req protocol.GroupRequest
	if err := util.FullDecode(r.Body, &req); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Could not parse request body")
	}

	if err := h.Share.StartNewGroup(caller.UserName, req.GroupName); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
