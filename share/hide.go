package share

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// HideFromUser revokes the target user's access at the named level on the
// resource. The revoked level and every level above it are removed together,
// since a surviving higher claim would keep authorizing the revoked operation.
func (m *Manager) HideFromUser(caller string, targetUser string, dataType string, operation string, itemID string) error {
	defer util.Time("HideFromUser")()

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

	return m.removeClaims(actor.Username, target, resource, level)
}

// HideFromGroup revokes the group-held claim at the named level on the
// resource, with the same implied-upward stripping as HideFromUser.
func (m *Manager) HideFromGroup(caller string, targetGroup string, dataType string, operation string, itemID string) error {
	defer util.Time("HideFromGroup")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	resource, level, err := m.normalizeClaim(dataType, operation, itemID)
	if err != nil {
		return err
	}
	if targetGroup != models.EveryoneGroup {
		if _, err := m.DAO.GetGroupByName(targetGroup); err != nil {
			if err == sql.ErrNoRows {
				return ErrInvalidTargetGroup
			}
			return ErrStore
		}
	}

	target := models.GroupPrincipal(targetGroup)
	if err := m.gateAlterSharing(actor.Username, resource, level, target); err != nil {
		return err
	}

	return m.removeClaims(actor.Username, target, resource, level)
}

// HideFromAll revokes the AllUsers claim at the named level on the resource.
func (m *Manager) HideFromAll(caller string, dataType string, operation string, itemID string) error {
	defer util.Time("HideFromAll")()
	return m.HideFromGroup(caller, models.EveryoneGroup, dataType, operation, itemID)
}

func (m *Manager) removeClaims(actor string, target models.Principal, resource models.Resource, level models.AccessLevel) error {
	claimTypes := level.ImpliedUpward()
	if err := m.DAO.RemoveClaims(target, claimTypes, resource.String()); err != nil {
		m.Logger.Error("removing claims failed",
			zap.String("target", target.Name),
			zap.String("claimTypes", strings.Join(claimTypes, ",")),
			zap.Error(err))
		return ErrStore
	}
	m.publish("hide", actor, target, resource.String(), level.String(), "")
	return nil
}
