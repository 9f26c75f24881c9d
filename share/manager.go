// Package share is the mutation surface of the authorization layer. Every
// public operation follows the same shape: resolve and validate the inputs,
// evaluate the authorization gate for the caller, and only then touch the
// store. A gate failure returns a specific Error with no partial mutation.
package share

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/events"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/services/mail"
	"github.com/NiubilityNetCore/claim-share-server/services/registry"
)

// Manager performs the share and group mutations.
type Manager struct {
	DAO         dao.DAO
	Auth        auth.Authorization
	Types       registry.TypeValidator
	EventQueue  events.Publisher
	Mail        mail.Sender
	Logger      *zap.Logger
	CallbackURL string
}

// Opt sets an option on Manager.
type Opt func(*Manager)

// WithLogger sets a custom logger on Manager.
func WithLogger(logger *zap.Logger) Opt {
	return func(m *Manager) {
		m.Logger = logger
	}
}

// WithEventQueue sets the event publisher on Manager.
func WithEventQueue(q events.Publisher) Opt {
	return func(m *Manager) {
		m.EventQueue = q
	}
}

// WithMail sets the invite mail sender and callback base URL on Manager.
func WithMail(s mail.Sender, callbackURL string) Opt {
	return func(m *Manager) {
		m.Mail = s
		m.CallbackURL = callbackURL
	}
}

// NewManager constructs a Manager with defaults and options.
func NewManager(d dao.DAO, a auth.Authorization, types registry.TypeValidator, opts ...Opt) *Manager {
	m := Manager{DAO: d, Auth: a, Types: types}
	m.Logger = zap.NewNop()
	m.EventQueue = events.NullPublisher{}
	m.Mail = &mail.FakeSender{}
	for _, opt := range opts {
		opt(&m)
	}
	return &m
}

// resolveCaller confirms the caller exists and is not locked. Every gated
// operation fails closed on a locked account.
func (m *Manager) resolveCaller(caller string) (models.User, error) {
	if caller == "" {
		return models.User{}, ErrInvalidUser
	}
	user, err := m.DAO.GetUserByUsername(caller)
	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidUser
	}
	if err != nil {
		return models.User{}, ErrStore
	}
	if user.Locked {
		return models.User{}, ErrInvalidUser
	}
	return user, nil
}

// normalizeClaim validates the request parts against the type registry and
// assembles the resource descriptor and level a share or hide operates on.
// An omitted operation defaults to All, the highest level.
func (m *Manager) normalizeClaim(dataType string, operation string, itemID string) (models.Resource, models.AccessLevel, error) {
	if !m.Types.IsRegisteredType(dataType) {
		return models.Resource{}, 0, ErrInvalidDataType
	}
	level, ok := models.ParseAccessLevel(operation)
	if !ok {
		return models.Resource{}, 0, ErrData
	}
	resource, err := models.NewResource(dataType, itemID)
	if err != nil {
		return models.Resource{}, 0, ErrData
	}
	return resource, level, nil
}

// gateAlterSharing decides whether the caller may alter sharing of resource
// for the target principal. Precedence is Admin, then Owner, then - for group
// targets only - manager of the target group. Managers may pass only levels
// they could re-share (View or Edit) and only when they effectively hold Edit
// on the item themselves.
func (m *Manager) gateAlterSharing(caller string, resource models.Resource, level models.AccessLevel, target models.Principal) error {
	isAdmin, err := m.Auth.IsUserAdmin(caller)
	if err != nil {
		return ErrStore
	}

	// sharing or revoking across a whole type is reserved to admins
	if !resource.IsItem() {
		if !isAdmin {
			return ErrAdminOnly
		}
		return nil
	}

	if isAdmin {
		return nil
	}

	isOwner, err := m.Auth.IsUserOwner(caller, resource)
	if err != nil {
		return ErrStore
	}
	if isOwner {
		return nil
	}

	if target.Kind == models.KindGroup && target.Name != models.EveryoneGroup {
		isManager, err := m.Auth.IsGroupManager(caller, target.Name)
		if err != nil {
			return ErrStore
		}
		if isManager {
			if level > models.LevelEdit {
				return ErrManagerOnlyShared
			}
			holdsEdit, err := m.Auth.IsUserAuthorized(caller, resource, models.LevelEdit)
			if err != nil && err != auth.ErrUserLocked {
				return ErrStore
			}
			if !holdsEdit {
				return ErrManagerOrOwnerOnly
			}
			return nil
		}
		return ErrManagerOrOwnerOnly
	}

	return ErrOwnerOnly
}

// publish emits a post-commit event for a successful mutation.
func (m *Manager) publish(action string, actor string, target models.Principal, resource string, level string, group string) {
	m.EventQueue.Publish(events.ClaimEvent{
		Action:        action,
		Actor:         actor,
		PrincipalKind: string(target.Kind),
		PrincipalName: target.Name,
		Resource:      resource,
		Level:         level,
		GroupName:     group,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Success:       true,
	})
}
