package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

func (h AppServer) completeUsername(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	partial := captured["partial"]

	match, err := h.Share.CompleteUsername(caller.UserName, partial)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.CompletionResponse{Match: match})
	return nil
}

func (h AppServer) completeGroupName(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	partial := captured["partial"]

	match, err := h.Share.CompleteGroupName(caller.UserName, partial)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.CompletionResponse{Match: match})
	return nil
}
