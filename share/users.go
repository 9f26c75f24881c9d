package share

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// ListUsers returns every known account. Admin only.
func (m *Manager) ListUsers(caller string) ([]models.User, error) {
	defer util.Time("ListUsers")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return nil, err
	}
	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return nil, ErrStore
	}
	if !isAdmin {
		return nil, ErrAdminOnly
	}

	users, err := m.DAO.GetUsers()
	if err != nil {
		return nil, ErrStore
	}
	return users, nil
}

// SetUserLocked locks or unlocks an account. A locked account fails every
// authorization check until unlocked. Admin only, and the site administrator
// cannot be locked out.
func (m *Manager) SetUserLocked(caller string, username string, locked bool) error {
	defer util.Time("SetUserLocked")()

	actor, err := m.resolveCaller(caller)
	if err != nil {
		return err
	}
	isAdmin, err := m.Auth.IsUserAdmin(actor.Username)
	if err != nil {
		return ErrStore
	}
	if !isAdmin {
		return ErrAdminOnly
	}
	if _, err := m.DAO.GetUserByUsername(username); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidTargetPrincipal
		}
		return ErrStore
	}
	if locked {
		isSiteAdmin, err := m.Auth.IsUserSiteAdmin(username)
		if err != nil {
			return ErrStore
		}
		if isSiteAdmin {
			return ErrSiteAdminOnly
		}
	}

	if err := m.DAO.SetUserLocked(username, locked, actor.Username); err != nil {
		m.Logger.Error("setting lock state failed", zap.String("username", username), zap.Error(err))
		return ErrStore
	}

	action := "unlock"
	if locked {
		action = "lock"
	}
	m.publish(action, actor.Username, models.UserPrincipal(username), "", "", "")
	return nil
}
