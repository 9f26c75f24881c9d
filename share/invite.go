package share

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// InviteTTL is how long an invite token stays redeemable.
const InviteTTL = 72 * time.Hour

// InviteUserToGroup creates a pending membership invite and mails the invitee
// a callback link carrying the token. The group's manager or an admin may
// invite. For non-admin callers an unknown invitee still reports success, so
// the operation cannot be used to probe which accounts exist.
func (m *Manager) InviteUserToGroup(caller string, username string, groupName string) error {
	defer util.Time("InviteUserToGroup")()

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

	invitee, err := m.DAO.GetUserByUsername(username)
	if err == sql.ErrNoRows {
		isAdmin, adminErr := m.Auth.IsUserAdmin(actor.Username)
		if adminErr != nil {
			return ErrStore
		}
		if isAdmin {
			return ErrInvalidTargetPrincipal
		}
		// do not reveal which accounts exist
		return nil
	}
	if err != nil {
		return ErrStore
	}

	alreadyMember, err := m.DAO.IsUserInGroup(username, groupName)
	if err != nil {
		return ErrStore
	}
	if alreadyMember {
		return nil
	}

	token, err := util.NewGUID()
	if err != nil {
		m.Logger.Error("generating invite token failed", zap.Error(err))
		return ErrStore
	}
	invite := models.GroupInvite{
		Token:       token,
		GroupName:   groupName,
		Username:    username,
		CreatedBy:   actor.Username,
		ExpiresDate: time.Now().Add(InviteTTL),
	}
	if _, err := m.DAO.CreateGroupInvite(invite); err != nil {
		m.Logger.Error("creating invite failed", zap.String("group", groupName), zap.Error(err))
		return ErrStore
	}

	if invitee.Email.Valid && invitee.Email.String != "" {
		callback := m.CallbackURL + "?token=" + invite.Token
		if err := m.Mail.SendGroupInvite(invitee.Email.String, groupName, callback); err != nil {
			// the invite row stands, delivery can be retried out of band
			m.Logger.Error("sending invite mail failed", zap.String("to", invitee.Email.String), zap.Error(err))
		}
	}

	m.publish("invite", actor.Username, models.UserPrincipal(username), "", "", groupName)
	return nil
}

// AcceptGroupInvite redeems an invite token, marking the invite used and
// enrolling the invitee in one transaction. Unknown, expired and already
// redeemed tokens all fail the same way.
func (m *Manager) AcceptGroupInvite(token string) (models.GroupInvite, error) {
	defer util.Time("AcceptGroupInvite")()

	if !util.IsGUID(token) {
		return models.GroupInvite{}, ErrInvalidInvite
	}
	invite, err := m.DAO.AcceptGroupInvite(token)
	if err != nil {
		return models.GroupInvite{}, ErrInvalidInvite
	}

	m.notify(models.GroupPrincipal(invite.GroupName), invite.Username,
		invite.Username+" joined the "+invite.GroupName+" group")
	m.publish("invite-accept", invite.Username, models.UserPrincipal(invite.Username), "", "", invite.GroupName)
	return invite, nil
}
