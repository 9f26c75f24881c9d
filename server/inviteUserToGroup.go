package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

func (h AppServer) inviteUserToGroup(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	var req protocol.InviteRequest
	if err := util.FullDecode(r.Body, &req); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Could not parse request body")
	}

	if err := h.Share.InviteUserToGroup(caller.UserName, req.Username, req.GroupName); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}

// acceptInvite redeems an invite token from the mailed callback link. The
// token itself authenticates the request, no caller identity is required.
func (h AppServer) acceptInvite(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	token := r.URL.Query().Get("token")

	invite, err := h.Share.AcceptGroupInvite(token)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.AcceptInviteResponse{Response: "success", GroupName: invite.GroupName})
	return nil
}
