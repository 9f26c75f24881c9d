package dao

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/config"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

// SchemaVersion marks compatibility with previously created databases.
// On startup the schema is checked and a mismatch is fatal.
var SchemaVersion = "20260301"

// DAO defines the contract our app has with the database.
type DAO interface {
	// users
	CreateUser(user models.User) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetUsers() ([]models.User, error)
	SetUserLocked(username string, locked bool, modifiedBy string) error
	SearchUsersByUsername(partial string) (string, error)
	// groups and membership
	CreateGroup(group models.Group, manager string) (models.Group, error)
	GetGroupByName(name string) (models.Group, error)
	DeleteGroup(name string) error
	SearchGroupsByName(partial string) (string, error)
	AddUserToGroup(username string, groupName string, createdBy string) error
	RemoveUserFromGroup(username string, groupName string) error
	GetGroupsForUser(username string) ([]string, error)
	GetMembersOfGroup(groupName string) ([]string, error)
	IsUserInGroup(username string, groupName string) (bool, error)
	GetGroupManager(groupName string) (string, error)
	TransferGroupManager(groupName string, newManager string, modifiedBy string, enroll bool) error
	TransferSiteAdmin(newAdmin string, modifiedBy string) error
	// claims
	AddClaim(principal models.Principal, claimType string, claimValue string, createdBy string) error
	RemoveClaims(principal models.Principal, claimTypes []string, claimValue string) error
	HasClaim(principal models.Principal, claimType string, claimValue string) (bool, error)
	GetClaimsForPrincipal(principal models.Principal) ([]models.Claim, error)
	GetClaimsForResource(claimValue string) ([]models.Claim, error)
	// messages
	CreateMessage(message models.Message) error
	GetMessagesForPrincipal(username string, groups []string) ([]models.Message, error)
	// invites
	CreateGroupInvite(invite models.GroupInvite) (models.GroupInvite, error)
	AcceptGroupInvite(token string) (models.GroupInvite, error)
	// lifecycle
	EnsureBuiltInGroups(siteAdmin string) error
	GetDBState() (models.DBState, error)
	GetLogger() *zap.Logger
}

// DataAccessLayer is a concrete DAO implementation with a true DB connection.
type DataAccessLayer struct {
	// MetadataDB is the connection.
	MetadataDB *sqlx.DB
	// Logger has a default, but can be updated by passing options to constructor.
	Logger *zap.Logger
}

// Opt sets an option on DataAccessLayer.
type Opt func(*DataAccessLayer)

// WithLogger sets a custom logger on DataAccessLayer.
func WithLogger(logger *zap.Logger) Opt {
	return func(d *DataAccessLayer) {
		d.Logger = logger
	}
}

// NewDataAccessLayer constructs a new DataAccessLayer with defaults and options. A string database
// identifier is also returned.
func NewDataAccessLayer(conf config.DatabaseConfiguration, opts ...Opt) (*DataAccessLayer, string, error) {

	db, err := conf.GetDatabaseHandle()
	if err != nil {
		return nil, "", err
	}
	d := DataAccessLayer{MetadataDB: db}

	defaults(&d)
	for _, opt := range opts {
		opt(&d)
	}

	if err := db.Ping(); err != nil {
		return nil, "", fmt.Errorf("could not ping database: %v", err)
	}

	state, err := d.GetDBState()
	if err != nil {
		return nil, "", fmt.Errorf("getting db state failed: %v", err)
	}
	if state.SchemaVersion != SchemaVersion {
		return nil, "", fmt.Errorf("schema version %s does not match required %s", state.SchemaVersion, SchemaVersion)
	}

	return &d, state.Identifier, nil
}

func defaults(d *DataAccessLayer) {
	d.Logger = config.RootLogger
}

// GetLogger returns the logger assigned to this DAO.
func (dao *DataAccessLayer) GetLogger() *zap.Logger {
	return dao.Logger
}
