package server

import (
	"net/http"

	"github.com/NiubilityNetCore/claim-share-server/share"
)

// statusForShareError maps the share manager's error taxonomy onto http
// status codes. Unrecognized errors are treated as server faults.
func statusForShareError(err error) int {
	switch err {
	case share.ErrInvalidUser:
		return http.StatusForbidden
	case share.ErrAdminOnly, share.ErrSiteAdminOnly, share.ErrOwnerOnly,
		share.ErrManagerOnly, share.ErrManagerOrOwnerOnly, share.ErrManagerOnlyShared,
		share.ErrViewEditOnly, share.ErrSiteAdminSingular, share.ErrAdminRequired,
		share.ErrAllUsersRequired, share.ErrMustHaveManager:
		return http.StatusForbidden
	case share.ErrInvalidDataType, share.ErrData, share.ErrInvalidTargetPrincipal,
		share.ErrInvalidTargetGroup, share.ErrDuplicateGroupName, share.ErrReservedGroupName,
		share.ErrNotMember, share.ErrInvalidInvite:
		return http.StatusBadRequest
	case share.ErrStore:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// shareError wraps a share manager failure as an AppError with its status.
func shareError(err error) *AppError {
	return NewAppError(statusForShareError(err), err, err.Error())
}
