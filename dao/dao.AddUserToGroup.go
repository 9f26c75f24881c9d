package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// AddUserToGroup enrolls a user in a group. Adding an existing member is a
// no-op success.
func (dao *DataAccessLayer) AddUserToGroup(username string, groupName string, createdBy string) error {
	defer util.Time("AddUserToGroup")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = addUserToGroupInTransaction(tx, username, groupName, createdBy)
	if err != nil {
		dao.GetLogger().Error("error in AddUserToGroup", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func addUserToGroupInTransaction(tx *sqlx.Tx, username string, groupName string, createdBy string) error {
	var count int
	if err := tx.Get(&count, `select count(*) from membership where groupName = ? and username = ?`,
		groupName, username); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := tx.Exec(`insert membership set groupName = ?, username = ?, createdBy = ?`,
		groupName, username, createdBy)
	return err
}
