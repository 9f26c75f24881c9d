package auth

import "github.com/NiubilityNetCore/claim-share-server/metadata/models"

// FakeAuth is suitable for tests. Add fields to this struct to hold fake
// responses for each of the methods that FakeAuth will implement. These fake
// response fields can be explicitly set, or setup functions can be defined.
type FakeAuth struct {
	Err         error
	Groups      []string
	Claims      []models.Claim
	Authorized  bool
	Owner       bool
	Admin       bool
	SiteAdmin   bool
	Manager     bool
	ManagerOf   map[string]bool
}

// GetGroupsForUser for FakeAuth.
func (fake *FakeAuth) GetGroupsForUser(username string) ([]string, error) {
	return fake.Groups, fake.Err
}

// EffectiveClaims for FakeAuth.
func (fake *FakeAuth) EffectiveClaims(username string) ([]models.Claim, error) {
	return fake.Claims, fake.Err
}

// IsUserAuthorized for FakeAuth.
func (fake *FakeAuth) IsUserAuthorized(username string, resource models.Resource, operation models.AccessLevel) (bool, error) {
	return fake.Authorized, fake.Err
}

// IsUserOwner for FakeAuth.
func (fake *FakeAuth) IsUserOwner(username string, resource models.Resource) (bool, error) {
	return fake.Owner, fake.Err
}

// IsUserAdmin for FakeAuth.
func (fake *FakeAuth) IsUserAdmin(username string) (bool, error) {
	return fake.Admin, fake.Err
}

// IsUserSiteAdmin for FakeAuth.
func (fake *FakeAuth) IsUserSiteAdmin(username string) (bool, error) {
	return fake.SiteAdmin, fake.Err
}

// IsGroupManager for FakeAuth. ManagerOf takes precedence over Manager when set.
func (fake *FakeAuth) IsGroupManager(username string, groupName string) (bool, error) {
	if fake.ManagerOf != nil {
		return fake.ManagerOf[groupName], fake.Err
	}
	return fake.Manager, fake.Err
}
