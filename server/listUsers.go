package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/mapping"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

func (h AppServer) listUsers(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	users, err := h.Share.ListUsers(caller.UserName)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.UserListResponse{Users: mapping.MapUsersToProtocol(users)})
	return nil
}

func (h AppServer) lockUser(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	var req protocol.LockRequest
	if err := util.FullDecode(r.Body, &req); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Could not parse request body")
	}

	if err := h.Share.SetUserLocked(caller.UserName, req.Username, req.Locked); err != nil {
		return shareError(err)
	}

	// locked users must not be served from a stale cache entry
	h.UsersLruCache.Delete(req.Username)

	jsonResponse(w, protocol.Success)
	return nil
}
