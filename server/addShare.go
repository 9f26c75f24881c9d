package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

func (h AppServer) addShare(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	var req protocol.ShareRequest
	if err := util.FullDecode(r.Body, &req); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Could not parse request body")
	}

	var err error
	switch {
	case req.ShareWithAll:
		err = h.Share.ShareWithAll(caller.UserName, req.DataType, req.Operation, req.ItemID)
	case req.TargetGroup != "":
		err = h.Share.ShareWithGroup(caller.UserName, req.TargetGroup, req.DataType, req.Operation, req.ItemID)
	case req.TargetUser != "":
		err = h.Share.ShareWithUser(caller.UserName, req.TargetUser, req.DataType, req.Operation, req.ItemID)
	default:
		return NewAppError(http.StatusBadRequest, nil, "No target principal specified")
	}
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
