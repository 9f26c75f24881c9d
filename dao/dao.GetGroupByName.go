package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetGroupByName looks up a group record by its unique case sensitive name.
func (dao *DataAccessLayer) GetGroupByName(name string) (models.Group, error) {
	defer util.Time("GetGroupByName")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.Group{}, err
	}
	response, err := getGroupByNameInTransaction(tx, name)
	if err != nil {
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getGroupByNameInTransaction(tx *sqlx.Tx, name string) (models.Group, error) {
	var dbGroup models.Group
	// binary comparison keeps name matching case sensitive
	err := tx.Get(&dbGroup, `
    select
        id
        ,name
        ,isBuiltIn
        ,createdDate
        ,createdBy
    from usergroup
    where name = binary ?
    `, name)
	return dbGroup, err
}
