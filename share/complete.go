package share

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// CompleteUsername resolves a partial username to the single best match.
// Admins match against every known account. Other callers match only against
// users who share a group with them, so completion does not leak the full
// account roster. No match yields the empty string.
func (m *Manager) CompleteUsername(caller string, partial string) (string, error) {
	defer util.Time("CompleteUsername")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return "", err
	}
	if partial == "" {
		return "", nil
	}

	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return "", ErrStore
	}
	if isAdmin {
		match, err := m.DAO.SearchUsersByUsername(partial)
		if err != nil && err != sql.ErrNoRows {
			return "", ErrStore
		}
		return match, nil
	}

	groups, err := m.DAO.GetGroupsForUser(actor.Username)
	if err != nil {
		return "", ErrStore
	}
	seen := map[string]bool{}
	var candidates []string
	for _, group := range groups {
		if group == models.EveryoneGroup {
			continue
		}
		members, err := m.DAO.GetMembersOfGroup(group)
		if err != nil {
			return "", ErrStore
		}
		for _, member := range members {
			if member == actor.Username || seen[member] {
				continue
			}
			seen[member] = true
			if strings.HasPrefix(strings.ToLower(member), strings.ToLower(partial)) {
				candidates = append(candidates, member)
			}
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// CompleteGroupName resolves a partial group name to the single best match.
// Admins match against every group, other callers only against the non built
// in groups they belong to.
func (m *Manager) CompleteGroupName(caller string, partial string) (string, error) {
	defer util.Time("CompleteGroupName")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return "", err
	}
	if partial == "" {
		return "", nil
	}

	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return "", ErrStore
	}
	if isAdmin {
		match, err := m.DAO.SearchGroupsByName(partial)
		if err != nil && err != sql.ErrNoRows {
			return "", ErrStore
		}
		return match, nil
	}

	groups, err := m.DAO.GetGroupsForUser(actor.Username)
	if err != nil {
		return "", ErrStore
	}
	var candidates []string
	for _, group := range groups {
		if models.IsBuiltInGroup(group) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(group), strings.ToLower(partial)) {
			candidates = append(candidates, group)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// ListShares returns every claim attached to the resource, across all
// principals. Visible to admins, and for item descriptors to the item's owner.
func (m *Manager) ListShares(caller string, dataType string, itemID string) ([]models.Claim, error) {
	defer util.Time("ListShares")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return nil, err
	}
	if !m.Types.IsRegisteredType(dataType) {
		return nil, ErrInvalidDataType
	}
	resource, err := models.NewResource(dataType, itemID)
	if err != nil {
		return nil, ErrData
	}

	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return nil, ErrStore
	}
	if !isAdmin {
		if !resource.IsItem() {
			return nil, ErrAdminOnly
		}
		isOwner, err := m.Auth.IsUserOwner(actor.Username, resource)
		if err != nil {
			return nil, ErrStore
		}
		if !isOwner {
			return nil, ErrOwnerOnly
		}
	}

	claims, err := m.DAO.GetClaimsForResource(resource.String())
	if err != nil {
		return nil, ErrStore
	}
	return claims, nil
}

// ListMessages returns the caller's notifications, addressed to them directly
// or to any group they belong to.
func (m *Manager) ListMessages(caller string) ([]models.Message, error) {
	defer util.Time("ListMessages")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return nil, err
	}
	groups, err := m.DAO.GetGroupsForUser(actor.Username)
	if err != nil {
		return nil, ErrStore
	}
	messages, err := m.DAO.GetMessagesForPrincipal(actor.Username, groups)
	if err != nil {
		return nil, ErrStore
	}
	return messages, nil
}
