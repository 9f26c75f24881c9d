package share

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// ShareWithUser grants the target user the named level on the resource. The
// grant stores exactly one claim at the named level, never the lower levels it
// would imply.
func (m *Manager) ShareWithUser(caller string, targetUser string, dataType string, operation string, itemID string) error {
	defer util.Time("ShareWithUser")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	resource, level, err := m.normalizeClaim(dataType, operation, itemID)
	if err != nil {
		return err
	}
	if _, err := m.DAO.GetUserByUsername(targetUser); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetPrincipal
		}
		return ErrStore
	}

	target := models.UserPrincipal(targetUser)
	if err := m.gateAlterSharing(actor.Username, resource, level, target); err != nil {
		return err
	}

	if err := m.DAO.AddClaim(target, level.String(), resource.String(), actor.Username); err != nil {
		m.Logger.Error("adding claim failed", zap.String("target", targetUser), zap.Error(err))
		return ErrStore
	}

	m.notify(target, actor.Username, fmt.Sprintf("%s shared %s (%s) with you", actor.Username, resource.String(), level.String()))
	m.publish("share", actor.Username, target, resource.String(), level.String(), "")
	return nil
}

// ShareWithGroup grants every member of the target group the named level on
// the resource through a single group-held claim. Sharing with AllUsers by
// name follows the same restriction as sharing with all users directly.
func (m *Manager) ShareWithGroup(caller string, targetGroup string, dataType string, operation string, itemID string) error {
	defer util.Time("ShareWithGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	resource, level, err := m.normalizeClaim(dataType, operation, itemID)
	if err != nil {
		return err
	}
	if targetGroup == models.EveryoneGroup {
		return m.shareWithEveryone(actor, resource, level)
	}
	if _, err := m.DAO.GetGroupByName(targetGroup); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetGroup
		}
		return ErrStore
	}

	target := models.GroupPrincipal(targetGroup)
	if err := m.gateAlterSharing(actor.Username, resource, level, target); err != nil {
		return err
	}

	if err := m.DAO.AddClaim(target, level.String(), resource.String(), actor.Username); err != nil {
		m.Logger.Error("adding claim failed", zap.String("target", targetGroup), zap.Error(err))
		return ErrStore
	}

	m.notify(target, actor.Username, fmt.Sprintf("%s shared %s (%s) with the %s group", actor.Username, resource.String(), level.String(), targetGroup))
	m.publish("share", actor.Username, target, resource.String(), level.String(), "")
	return nil
}

// ShareWithAll grants every user the named level on the resource by attaching
// the claim to the implicit AllUsers group. Only View and Edit may be opened
// to everyone.
func (m *Manager) ShareWithAll(caller string, dataType string, operation string, itemID string) error {
	defer util.Time("ShareWithAll")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	resource, level, err := m.normalizeClaim(dataType, operation, itemID)
	if err != nil {
		return err
	}
	return m.shareWithEveryone(actor, resource, level)
}

func (m *Manager) shareWithEveryone(actor models.User, resource models.Resource, level models.AccessLevel) error {
	if level > models.LevelEdit {
		return ErrViewEditOnly
	}
	target := models.GroupPrincipal(models.EveryoneGroup)
	if err := m.gateAlterSharing(actor.Username, resource, level, target); err != nil {
		return err
	}
	if err := m.DAO.AddClaim(target, level.String(), resource.String(), actor.Username); err != nil {
		m.Logger.Error("adding claim failed", zap.String("target", models.EveryoneGroup), zap.Error(err))
		return ErrStore
	}
	m.publish("share", actor.Username, target, resource.String(), level.String(), "")
	return nil
}

// notify records a message for the target principal. Message failures are
// logged and swallowed, the grant itself already committed.
func (m *Manager) notify(target models.Principal, createdBy string, body string) {
	err := m.DAO.CreateMessage(models.Message{
		RecipientKind: target.Kind,
		RecipientName: target.Name,
		Body:          body,
		CreatedBy:     createdBy,
	})
	if err != nil {
		m.Logger.Error("creating notification message failed", zap.String("recipient", target.Name), zap.Error(err))
	}
}
