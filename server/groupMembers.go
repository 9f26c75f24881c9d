package server

import (
	"context"
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

func (h AppServer) groupMembers(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	groupName := captured["groupName"]

	members, err := h.Share.GetMembersOfGroup(caller.UserName, groupName)
	if err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.GroupMembersResponse{GroupName: groupName, Members: members})
	return nil
}

func (h AppServer) addGroupMember(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	groupName := captured["groupName"]

	var req protocol.MemberRequest
	if err := util.FullDecode(r.Body, &req); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Could not parse request body")
	}

	if err := h.Share.AddUserToGroup(caller.UserName, req.Username, groupName); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}

func (h AppServer) removeGroupMember(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, _ := CallerFromContext(ctx)

	captured, _ := CaptureGroupsFromContext(ctx)
	groupName := captured["groupName"]
	username := captured["username"]

	if err := h.Share.RemoveUserFromGroup(caller.UserName, username, groupName); err != nil {
		return shareError(err)
	}

	jsonResponse(w, protocol.Success)
	return nil
}
