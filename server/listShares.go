package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/mapping"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) listShares(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	dataType := captured["dataType"]
	itemID := captured["itemId"]

	claims, err := h.Share.ListShares(caller.UserName, dataType, itemID)
	if err != nil {
		return shareError(err)
	}

	resource := dataType
	if itemID != "" {
		resource = dataType + "{" + itemID + "}"
	}
	jsonResponse(w, protocol.ShareListResponse{
		Resource: resource,
		Shares:   mapping.MapClaimsToShareEntries(claims),
	})
	return nil
}
