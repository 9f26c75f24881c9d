package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

// ClaimAuth is an Authorization implementation backed by the claim store.
// Resolution walks a request-scoped snapshot of the user's effective claims,
// the union of their direct claims and every claim held by every group they
// belong to, including the implicit AllUsers group.
type ClaimAuth struct {
	DAO    dao.DAO
	Logger *zap.Logger
}

// NewClaimAuth constructs a ClaimAuth resolver.
func NewClaimAuth(logger *zap.Logger, d dao.DAO) *ClaimAuth {
	return &ClaimAuth{DAO: d, Logger: logger}
}

// GetGroupsForUser returns the names of groups the user belongs to.
func (a *ClaimAuth) GetGroupsForUser(username string) ([]string, error) {
	if username == "" {
		return nil, ErrUserNotSpecified
	}
	groups, err := a.DAO.GetGroupsForUser(username)
	if err != nil {
		a.Logger.Error("error retrieving groups for user", zap.String("username", username), zap.Error(err))
		return nil, ErrFailToRetrieveGroups
	}
	return groups, nil
}

// EffectiveClaims materializes the user's effective claim set.
func (a *ClaimAuth) EffectiveClaims(username string) ([]models.Claim, error) {
	if username == "" {
		return nil, ErrUserNotSpecified
	}
	claims, err := a.DAO.GetClaimsForPrincipal(models.UserPrincipal(username))
	if err != nil {
		a.Logger.Error("error retrieving claims for user", zap.String("username", username), zap.Error(err))
		return nil, ErrFailToRetrieveClaims
	}
	groups, err := a.GetGroupsForUser(username)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		groupClaims, err := a.DAO.GetClaimsForPrincipal(models.GroupPrincipal(group))
		if err != nil {
			a.Logger.Error("error retrieving claims for group", zap.String("group", group), zap.Error(err))
			return nil, ErrFailToRetrieveClaims
		}
		claims = append(claims, groupClaims...)
	}
	return claims, nil
}

// IsUserAuthorized resolves whether the user may perform the operation on the
// resource. Checks are ordered by precedence and short circuit on first match:
//
//  1. a locked account is never authorized
//  2. the unrestricted super claim (All, All)
//  3. (All, type) authorizes any operation on the whole type
//  4. (operation, type)
//  5. for item descriptors, (All|operation|Owner, type{id})
//
// No operation-level implication is applied here; a stored Edit does not
// authorize Add. Implication is handled at revoke time by stripping upward.
func (a *ClaimAuth) IsUserAuthorized(username string, resource models.Resource, operation models.AccessLevel) (bool, error) {
	if username == "" {
		return false, ErrUserNotSpecified
	}
	user, err := a.DAO.GetUserByUsername(username)
	if err == sql.ErrNoRows {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, ErrFailToRetrieveClaims
	}
	if user.Locked {
		return false, ErrUserLocked
	}

	claims, err := a.EffectiveClaims(username)
	if err != nil {
		return false, err
	}

	typeValue := resource.TypeResource().String()
	hold := func(claimType, claimValue string) bool {
		for _, c := range claims {
			if c.ClaimType == claimType && c.ClaimValue == claimValue {
				return true
			}
		}
		return false
	}

	if hold(models.ClaimAll, models.SuperClaimValue) {
		return true, nil
	}
	if hold(models.ClaimAll, typeValue) {
		return true, nil
	}
	if hold(operation.String(), typeValue) {
		return true, nil
	}
	if resource.IsItem() {
		itemValue := resource.String()
		if hold(models.ClaimAll, itemValue) || hold(operation.String(), itemValue) || hold(models.ClaimOwner, itemValue) {
			return true, nil
		}
	}
	return false, nil
}

// IsUserOwner reports whether the user holds ownership of the item, either the
// Owner marker or an All claim scoped to that item, directly or through a group.
func (a *ClaimAuth) IsUserOwner(username string, resource models.Resource) (bool, error) {
	if !resource.IsItem() {
		return false, nil
	}
	claims, err := a.EffectiveClaims(username)
	if err != nil {
		return false, err
	}
	itemValue := resource.String()
	for _, c := range claims {
		if c.ClaimValue != itemValue {
			continue
		}
		if c.ClaimType == models.ClaimOwner || c.ClaimType == models.ClaimAll {
			return true, nil
		}
	}
	return false, nil
}

// IsUserAdmin reports membership in the Admin group. Site administrators count
// as administrators for gating purposes.
func (a *ClaimAuth) IsUserAdmin(username string) (bool, error) {
	inAdmin, err := a.DAO.IsUserInGroup(username, models.AdminGroup)
	if err != nil {
		return false, ErrFailToRetrieveGroups
	}
	if inAdmin {
		return true, nil
	}
	return a.IsUserSiteAdmin(username)
}

// IsUserSiteAdmin reports whether the user holds the singular SiteAdmin membership.
func (a *ClaimAuth) IsUserSiteAdmin(username string) (bool, error) {
	inGroup, err := a.DAO.IsUserInGroup(username, models.SiteAdminGroup)
	if err != nil {
		return false, ErrFailToRetrieveGroups
	}
	return inGroup, nil
}

// IsGroupManager reports whether the user holds the GroupManager claim for the group.
func (a *ClaimAuth) IsGroupManager(username string, groupName string) (bool, error) {
	has, err := a.DAO.HasClaim(models.UserPrincipal(username), models.ClaimGroupManager, groupName)
	if err != nil {
		return false, ErrFailToRetrieveClaims
	}
	return has, nil
}
