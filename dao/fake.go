package dao

import (
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

// FakeDAO is an in-memory DAO suitable for tests. All operations are guarded
// by a single mutex, which gives the same serialization guarantees the real
// implementation gets from row locking: transfers are atomic and a revoke's
// implied-claim cleanup cannot interleave with a concurrent grant.
type FakeDAO struct {
	mu      sync.Mutex
	seq     int64
	users   map[string]models.User
	groups  map[string]models.Group
	members map[string]map[string]bool // groupName -> usernames
	claims  []models.Claim
	msgs    []models.Message
	invites map[string]models.GroupInvite // token -> invite
	logger  *zap.Logger
}

// NewFakeDAO constructs a FakeDAO with the built in groups present and the
// given user seeded as the singular site administrator.
func NewFakeDAO(siteAdmin string) *FakeDAO {
	d := &FakeDAO{
		users:   make(map[string]models.User),
		groups:  make(map[string]models.Group),
		members: make(map[string]map[string]bool),
		invites: make(map[string]models.GroupInvite),
		logger:  zap.NewNop(),
	}
	for _, name := range []string{models.SiteAdminGroup, models.AdminGroup, models.EveryoneGroup} {
		d.groups[name] = models.Group{ID: d.nextID(), Name: name, IsBuiltIn: true, CreatedBy: siteAdmin}
		d.members[name] = make(map[string]bool)
	}
	d.users[siteAdmin] = models.User{ID: d.nextID(), Username: siteAdmin, CreatedBy: siteAdmin, ModifiedBy: siteAdmin}
	d.members[models.SiteAdminGroup][siteAdmin] = true
	return d
}

func (d *FakeDAO) nextID() int64 {
	d.seq++
	return d.seq
}

// GetLogger returns the logger assigned to this DAO.
func (d *FakeDAO) GetLogger() *zap.Logger { return d.logger }

// GetDBState for FakeDAO.
func (d *FakeDAO) GetDBState() (models.DBState, error) {
	return models.DBState{SchemaVersion: SchemaVersion, Identifier: "fake"}, nil
}

// EnsureBuiltInGroups for FakeDAO is satisfied at construction.
func (d *FakeDAO) EnsureBuiltInGroups(siteAdmin string) error { return nil }

// CreateUser for FakeDAO.
func (d *FakeDAO) CreateUser(user models.User) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.users[user.Username]; ok {
		return existing, nil
	}
	user.ID = d.nextID()
	user.CreatedDate = time.Now()
	user.ModifiedDate = user.CreatedDate
	user.ModifiedBy = user.CreatedBy
	d.users[user.Username] = user
	return user, nil
}

// GetUserByUsername for FakeDAO.
func (d *FakeDAO) GetUserByUsername(username string) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

// GetUsers for FakeDAO.
func (d *FakeDAO) GetUsers() ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var users []models.User
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// SetUserLocked for FakeDAO.
func (d *FakeDAO) SetUserLocked(username string, locked bool, modifiedBy string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return sql.ErrNoRows
	}
	user.Locked = locked
	user.ModifiedBy = modifiedBy
	d.users[username] = user
	return nil
}

// SearchUsersByUsername for FakeDAO.
func (d *FakeDAO) SearchUsersByUsername(partial string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var names []string
	for name := range d.users {
		if strings.HasPrefix(name, partial) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], nil
}

// CreateGroup for FakeDAO.
func (d *FakeDAO) CreateGroup(group models.Group, manager string) (models.Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.groups[group.Name]; ok {
		return models.Group{}, &mysqlDuplicate{}
	}
	group.ID = d.nextID()
	group.CreatedDate = time.Now()
	d.groups[group.Name] = group
	d.members[group.Name] = make(map[string]bool)
	if len(manager) > 0 {
		d.members[group.Name][manager] = true
		d.claims = append(d.claims, models.Claim{
			ID:            d.nextID(),
			PrincipalKind: models.KindUser,
			PrincipalName: manager,
			ClaimType:     models.ClaimGroupManager,
			ClaimValue:    group.Name,
			CreatedBy:     group.CreatedBy,
		})
	}
	return group, nil
}

type mysqlDuplicate struct{}

func (e *mysqlDuplicate) Error() string { return "Error 1062: Duplicate entry" }

// GetGroupByName for FakeDAO.
func (d *FakeDAO) GetGroupByName(name string) (models.Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	group, ok := d.groups[name]
	if !ok {
		return models.Group{}, sql.ErrNoRows
	}
	return group, nil
}

// DeleteGroup for FakeDAO mirrors the ordered cascade of the real DAO.
func (d *FakeDAO) DeleteGroup(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var msgs []models.Message
	for _, m := range d.msgs {
		if m.RecipientKind == models.KindGroup && m.RecipientName == name {
			continue
		}
		msgs = append(msgs, m)
	}
	d.msgs = msgs
	for token, inv := range d.invites {
		if inv.GroupName == name {
			delete(d.invites, token)
		}
	}
	delete(d.members, name)
	var claims []models.Claim
	for _, c := range d.claims {
		if c.ClaimType == models.ClaimGroupManager && c.ClaimValue == name {
			continue
		}
		if c.PrincipalKind == models.KindGroup && c.PrincipalName == name {
			continue
		}
		claims = append(claims, c)
	}
	d.claims = claims
	delete(d.groups, name)
	return nil
}

// SearchGroupsByName for FakeDAO.
func (d *FakeDAO) SearchGroupsByName(partial string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var names []string
	for name := range d.groups {
		if strings.HasPrefix(name, partial) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], nil
}

// AddUserToGroup for FakeDAO.
func (d *FakeDAO) AddUserToGroup(username string, groupName string, createdBy string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.members[groupName]; !ok {
		d.members[groupName] = make(map[string]bool)
	}
	d.members[groupName][username] = true
	return nil
}

// RemoveUserFromGroup for FakeDAO.
func (d *FakeDAO) RemoveUserFromGroup(username string, groupName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m, ok := d.members[groupName]; ok {
		delete(m, username)
	}
	return nil
}

// GetGroupsForUser for FakeDAO. The implicit AllUsers membership is included.
func (d *FakeDAO) GetGroupsForUser(username string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var groups []string
	for name, m := range d.members {
		if name == models.EveryoneGroup {
			continue
		}
		if m[username] {
			groups = append(groups, name)
		}
	}
	sort.Strings(groups)
	return append(groups, models.EveryoneGroup), nil
}

// GetMembersOfGroup for FakeDAO.
func (d *FakeDAO) GetMembersOfGroup(groupName string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var members []string
	for name := range d.members[groupName] {
		members = append(members, name)
	}
	sort.Strings(members)
	return members, nil
}

// IsUserInGroup for FakeDAO.
func (d *FakeDAO) IsUserInGroup(username string, groupName string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if groupName == models.EveryoneGroup {
		return true, nil
	}
	m, ok := d.members[groupName]
	if !ok {
		return false, nil
	}
	return m[username], nil
}

// GetGroupManager for FakeDAO.
func (d *FakeDAO) GetGroupManager(groupName string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.claims {
		if c.PrincipalKind == models.KindUser && c.ClaimType == models.ClaimGroupManager && c.ClaimValue == groupName {
			return c.PrincipalName, nil
		}
	}
	return "", nil
}

// TransferGroupManager for FakeDAO.
func (d *FakeDAO) TransferGroupManager(groupName string, newManager string, modifiedBy string, enroll bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if enroll {
		if _, ok := d.members[groupName]; !ok {
			d.members[groupName] = make(map[string]bool)
		}
		d.members[groupName][newManager] = true
	}
	var claims []models.Claim
	for _, c := range d.claims {
		if c.ClaimType == models.ClaimGroupManager && c.ClaimValue == groupName {
			continue
		}
		claims = append(claims, c)
	}
	d.claims = append(claims, models.Claim{
		ID:            d.nextID(),
		PrincipalKind: models.KindUser,
		PrincipalName: newManager,
		ClaimType:     models.ClaimGroupManager,
		ClaimValue:    groupName,
		CreatedBy:     modifiedBy,
	})
	return nil
}

// TransferSiteAdmin for FakeDAO.
func (d *FakeDAO) TransferSiteAdmin(newAdmin string, modifiedBy string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	holders := d.members[models.SiteAdminGroup]
	if len(holders) != 1 || !holders[modifiedBy] {
		return ErrSiteAdminHolder
	}
	if holders[newAdmin] {
		return nil
	}
	delete(holders, modifiedBy)
	holders[newAdmin] = true
	return nil
}

// AddClaim for FakeDAO. Adding an existing claim is a no-op success.
func (d *FakeDAO) AddClaim(principal models.Principal, claimType string, claimValue string, createdBy string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.claims {
		if c.PrincipalKind == principal.Kind && c.PrincipalName == principal.Name &&
			c.ClaimType == claimType && c.ClaimValue == claimValue {
			return nil
		}
	}
	d.claims = append(d.claims, models.Claim{
		ID:            d.nextID(),
		PrincipalKind: principal.Kind,
		PrincipalName: principal.Name,
		ClaimType:     claimType,
		ClaimValue:    claimValue,
		CreatedDate:   time.Now(),
		CreatedBy:     createdBy,
	})
	return nil
}

// RemoveClaims for FakeDAO removes the whole set atomically under the mutex.
func (d *FakeDAO) RemoveClaims(principal models.Principal, claimTypes []string, claimValue string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	doomed := make(map[string]bool, len(claimTypes))
	for _, t := range claimTypes {
		doomed[t] = true
	}
	var claims []models.Claim
	for _, c := range d.claims {
		if c.PrincipalKind == principal.Kind && c.PrincipalName == principal.Name &&
			c.ClaimValue == claimValue && doomed[c.ClaimType] {
			continue
		}
		claims = append(claims, c)
	}
	d.claims = claims
	return nil
}

// HasClaim for FakeDAO.
func (d *FakeDAO) HasClaim(principal models.Principal, claimType string, claimValue string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.claims {
		if c.PrincipalKind == principal.Kind && c.PrincipalName == principal.Name &&
			c.ClaimType == claimType && c.ClaimValue == claimValue {
			return true, nil
		}
	}
	return false, nil
}

// GetClaimsForPrincipal for FakeDAO.
func (d *FakeDAO) GetClaimsForPrincipal(principal models.Principal) ([]models.Claim, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var claims []models.Claim
	for _, c := range d.claims {
		if c.PrincipalKind == principal.Kind && c.PrincipalName == principal.Name {
			claims = append(claims, c)
		}
	}
	return claims, nil
}

// GetClaimsForResource for FakeDAO.
func (d *FakeDAO) GetClaimsForResource(claimValue string) ([]models.Claim, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var claims []models.Claim
	for _, c := range d.claims {
		if c.ClaimValue == claimValue {
			claims = append(claims, c)
		}
	}
	return claims, nil
}

// CreateMessage for FakeDAO.
func (d *FakeDAO) CreateMessage(message models.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	message.ID = d.nextID()
	message.CreatedDate = time.Now()
	d.msgs = append(d.msgs, message)
	return nil
}

// GetMessagesForPrincipal for FakeDAO.
func (d *FakeDAO) GetMessagesForPrincipal(username string, groups []string) ([]models.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	inGroups := make(map[string]bool, len(groups))
	for _, g := range groups {
		inGroups[g] = true
	}
	var messages []models.Message
	for i := len(d.msgs) - 1; i >= 0; i-- {
		m := d.msgs[i]
		if m.RecipientKind == models.KindUser && m.RecipientName == username {
			messages = append(messages, m)
		} else if m.RecipientKind == models.KindGroup && inGroups[m.RecipientName] {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

// CreateGroupInvite for FakeDAO.
func (d *FakeDAO) CreateGroupInvite(invite models.GroupInvite) (models.GroupInvite, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	invite.ID = d.nextID()
	invite.CreatedDate = time.Now()
	d.invites[invite.Token] = invite
	return invite, nil
}

// AcceptGroupInvite for FakeDAO.
func (d *FakeDAO) AcceptGroupInvite(token string) (models.GroupInvite, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	invite, ok := d.invites[token]
	if !ok || invite.Accepted || time.Now().After(invite.ExpiresDate) {
		return models.GroupInvite{}, sql.ErrNoRows
	}
	invite.Accepted = true
	d.invites[token] = invite
	if _, ok := d.members[invite.GroupName]; !ok {
		d.members[invite.GroupName] = make(map[string]bool)
	}
	d.members[invite.GroupName][invite.Username] = true
	return invite, nil
}
