package share

import (
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// StartNewGroup creates a named group with the caller as its first member and
// manager. Names that are empty, parse as booleans, or contain an
// administrative token are reserved.
func (m *Manager) StartNewGroup(caller string, groupName string) error {
	defer util.Time("StartNewGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	if err := validateGroupName(groupName); err != nil {
		return err
	}

	group := models.Group{Name: groupName, CreatedBy: actor.Username}
	if _, err := m.DAO.CreateGroup(group, actor.Username); err != nil {
		if isDuplicate(err) {
			return ErrDuplicateGroupName
		}
		m.Logger.Error("creating group failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.publish("group-create", actor.Username, models.GroupPrincipal(groupName), "", "", groupName)
	return nil
}

// RemoveGroup deletes the group along with its memberships, held claims,
// pending invites and messages. Only the group's manager or an admin may
// remove it, and the built in groups never can be.
func (m *Manager) RemoveGroup(caller string, groupName string) error {
	defer util.Time("RemoveGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	if err := builtInGroupError(groupName); err != nil {
		return err
	}
	if _, err := m.DAO.GetGroupByName(groupName); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetGroup
		}
		return ErrStore
	}
	if err := m.gateManageGroup(actor.Username, groupName); err != nil {
		return err
	}

	if err := m.DAO.DeleteGroup(groupName); err != nil {
		m.Logger.Error("deleting group failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.publish("group-remove", actor.Username, models.GroupPrincipal(groupName), "", "", groupName)
	return nil
}

// AddUserToGroup enrolls a user in the group directly. The group's manager or
// an admin may enroll anyone. The Admin group itself is managed only by the
// site administrator, and the other built in groups reject enrollment.
func (m *Manager) AddUserToGroup(caller string, username string, groupName string) error {
	defer util.Time("AddUserToGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	if _, err := m.DAO.GetUserByUsername(username); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetPrincipal
		}
		return ErrStore
	}

	switch groupName {
	case models.SiteAdminGroup:
		return ErrSiteAdminSingular
	case models.EveryoneGroup:
		return ErrAllUsersRequired
	case models.AdminGroup:
		isSiteAdmin, err := m.Auth.IsUserSiteAdmin(actor.Username)
		if err != nil {
			return ErrStore
		}
		if !isSiteAdmin {
			return ErrAdminRequired
		}
	default:
		if _, err := m.DAO.GetGroupByName(groupName); err != nil {
			if err == sql.ErrNoRows {
				return ErrInvalidTargetGroup
			}
			return ErrStore
		}
		if err := m.gateManageGroup(actor.Username, groupName); err != nil {
			return err
		}
	}

	if err := m.DAO.AddUserToGroup(username, groupName, actor.Username); err != nil {
		m.Logger.Error("adding member failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.notify(models.UserPrincipal(username), actor.Username,
		actor.Username+" added you to the "+groupName+" group")
	m.publish("member-add", actor.Username, models.UserPrincipal(username), "", "", groupName)
	return nil
}

// RemoveUserFromGroup removes a member from the group. The manager cannot be
// removed while still managing, transfer management first. The Admin group is
// trimmed only by the site administrator.
func (m *Manager) RemoveUserFromGroup(caller string, username string, groupName string) error {
	defer util.Time("RemoveUserFromGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}

	switch groupName {
	case models.SiteAdminGroup:
		return ErrSiteAdminSingular
	case models.EveryoneGroup:
		return ErrAllUsersRequired
	case models.AdminGroup:
		isSiteAdmin, err := m.Auth.IsUserSiteAdmin(actor.Username)
		if err != nil {
			return ErrStore
		}
		if !isSiteAdmin {
			return ErrAdminRequired
		}
	default:
		if _, err := m.DAO.GetGroupByName(groupName); err != nil {
			if err == sql.ErrNoRows {
				return ErrInvalidTargetGroup
			}
			return ErrStore
		}
		if err := m.gateManageGroup(actor.Username, groupName); err != nil {
			return err
		}
		manager, err := m.DAO.GetGroupManager(groupName)
		if err != nil {
			return ErrStore
		}
		if manager == username {
			return ErrMustHaveManager
		}
	}

	if err := m.DAO.RemoveUserFromGroup(username, groupName); err != nil {
		m.Logger.Error("removing member failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.publish("member-remove", actor.Username, models.UserPrincipal(username), "", "", groupName)
	return nil
}

// LeaveGroup removes the caller from the group. The manager cannot leave
// until management has been transferred.
func (m *Manager) LeaveGroup(caller string, groupName string) error {
	defer util.Time("LeaveGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	if err := builtInGroupError(groupName); err != nil {
		return err
	}
	if _, err := m.DAO.GetGroupByName(groupName); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetGroup
		}
		return ErrStore
	}
	manager, err := m.DAO.GetGroupManager(groupName)
	if err != nil {
		return ErrStore
	}
	if manager == actor.Username {
		return ErrMustHaveManager
	}

	if err := m.DAO.RemoveUserFromGroup(actor.Username, groupName); err != nil {
		m.Logger.Error("leaving group failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.publish("member-leave", actor.Username, models.UserPrincipal(actor.Username), "", "", groupName)
	return nil
}

// GetMembersOfGroup lists the group's members. Membership rosters are visible
// to the group's members, its manager, and admins.
func (m *Manager) GetMembersOfGroup(caller string, groupName string) ([]string, error) {
	defer util.Time("GetMembersOfGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return nil, err
	}
	if _, err := m.DAO.GetGroupByName(groupName); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidTargetGroup
		}
		return nil, ErrStore
	}

	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return nil, ErrStore
	}
	if !isAdmin {
		inGroup, err := m.DAO.IsUserInGroup(actor.Username, groupName)
		if err != nil {
			return nil, ErrStore
		}
		isManager, err := m.Auth.IsGroupManager(actor.Username, groupName)
		if err != nil {
			return nil, ErrStore
		}
		if !inGroup && !isManager {
			return nil, ErrManagerOnly
		}
	}

	members, err := m.DAO.GetMembersOfGroup(groupName)
	if err != nil {
		return nil, ErrStore
	}
	return members, nil
}

// TransferManagerToUser moves group management to another user. The current
// manager or an admin may transfer. The new manager must already belong to the
// group unless an admin is transferring, in which case they are enrolled as
// part of the same transaction.
func (m *Manager) TransferManagerToUser(caller string, groupName string, newManager string) error {
	defer util.Time("TransferManagerToUser")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	if err := builtInGroupError(groupName); err != nil {
		return err
	}
	if _, err := m.DAO.GetGroupByName(groupName); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetGroup
		}
		return ErrStore
	}
	if _, err := m.DAO.GetUserByUsername(newManager); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetPrincipal
		}
		return ErrStore
	}
	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return ErrStore
	}
	if !isAdmin {
		isManager, err := m.Auth.IsGroupManager(actor.Username, groupName)
		if err != nil {
			return ErrStore
		}
		if !isManager {
			return ErrManagerOnly
		}
	}

	enroll := false
	isMember, err := m.DAO.IsUserInGroup(newManager, groupName)
	if err != nil {
		return ErrStore
	}
	if !isMember {
		if !isAdmin {
			return ErrNotMember
		}
		enroll = true
	}

	if err := m.DAO.TransferGroupManager(groupName, newManager, actor.Username, enroll); err != nil {
		m.Logger.Error("transferring group manager failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	m.notify(models.GroupPrincipal(groupName), actor.Username,
		actor.Username+" made "+newManager+" the manager of the "+groupName+" group")
	m.publish("manager-transfer", actor.Username, models.UserPrincipal(newManager), "", "", groupName)
	return nil
}

// TransferSiteAdminToUser moves the singular site administrator role to
// another user. Only the current site administrator may do this, and the
// transfer is atomic, the role is never held by zero or two users.
func (m *Manager) TransferSiteAdminToUser(caller string, newAdmin string) error {
	defer util.Time("TransferSiteAdminToUser")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	isSiteAdmin, err := m.Auth.IsUserSiteAdmin(actor.Username)
	if err != nil {
		return ErrStore
	}
	if !isSiteAdmin {
		return ErrSiteAdminOnly
	}
	if _, err := m.DAO.GetUserByUsername(newAdmin); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetPrincipal
		}
		return ErrStore
	}

	if err := m.DAO.TransferSiteAdmin(newAdmin, actor.Username); err != nil {
		if err == dao.ErrSiteAdminHolder {
			return ErrSiteAdminOnly
		}
		m.Logger.Error("transferring site admin failed", zap.Error(err))
		return ErrStore
	}

	m.notify(models.UserPrincipal(newAdmin), actor.Username,
		actor.Username+" transferred the site administrator role to you")
	m.publish("siteadmin-transfer", actor.Username, models.UserPrincipal(newAdmin), "", "", models.SiteAdminGroup)
	return nil
}

// gateManageGroup passes when the caller manages the group or is an admin.
func (m *Manager) gateManageGroup(caller string, groupName string) error {
	isManager, err := m.Auth.IsGroupManager(caller, groupName)
	if err != nil {
		return ErrStore
	}
	if isManager {
		return nil
	}
	isAdmin, err := m.Auth.IsUserAdmin(caller)
	if err != nil {
		return ErrStore
	}
	if !isAdmin {
		return ErrManagerOnly
	}
	return nil
}

// validateGroupName rejects names that could collide with boolean request
// parsing or masquerade as administrative groups.
func validateGroupName(name string) error {
	if name == "" {
		return ErrReservedGroupName
	}
	lower := strings.ToLower(name)
	if lower == "true" || lower == "false" {
		return ErrReservedGroupName
	}
	if strings.Contains(lower, "admin") {
		return ErrReservedGroupName
	}
	return nil
}

// builtInGroupError maps each built in group to its structural refusal.
func builtInGroupError(name string) error {
	switch name {
	case models.SiteAdminGroup:
		return ErrSiteAdminSingular
	case models.AdminGroup:
		return ErrAdminRequired
	case models.EveryoneGroup:
		return ErrAllUsersRequired
	}
	return nil
}

// isDuplicate reports whether err is the unique key violation from the store.
func isDuplicate(err error) bool {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
