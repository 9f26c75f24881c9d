package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// CreateGroup creates the group row, enrolls the manager as the first member,
// and attaches the GroupManager claim, all in one transaction so a group is
// never observable without a manager. When manager is empty only the group row
// is created, which is how the built in groups are seeded.
func (dao *DataAccessLayer) CreateGroup(group models.Group, manager string) (models.Group, error) {
	defer util.Time("CreateGroup")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Group{}, err
	}
	response, err := createGroupInTransaction(tx, group, manager)
	if err != nil {
		dao.GetLogger().Error("error in CreateGroup", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func createGroupInTransaction(tx *sqlx.Tx, group models.Group, manager string) (models.Group, error) {
	var dbGroup models.Group
	addGroupStatement, err := tx.Preparex(`insert usergroup set
        name = ?
        ,isBuiltIn = ?
        ,createdBy = ?
    `)
	if err != nil {
		return dbGroup, err
	}
	defer addGroupStatement.Close()
	if _, err := addGroupStatement.Exec(group.Name, group.IsBuiltIn, group.CreatedBy); err != nil {
		return dbGroup, err
	}
	if len(manager) > 0 {
		if err := addUserToGroupInTransaction(tx, manager, group.Name, group.CreatedBy); err != nil {
			return dbGroup, err
		}
		if err := addClaimInTransaction(tx, models.UserPrincipal(manager),
			models.ClaimGroupManager, group.Name, group.CreatedBy); err != nil {
			return dbGroup, err
		}
	}
	return getGroupByNameInTransaction(tx, group.Name)
}
