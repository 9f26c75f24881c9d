package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// RemoveUserFromGroup drops a user's membership in a group. Removing a user
// who is not a member is a no-op success.
func (dao *DataAccessLayer) RemoveUserFromGroup(username string, groupName string) error {
	defer util.Time("RemoveUserFromGroup")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = removeUserFromGroupInTransaction(tx, username, groupName)
	if err != nil {
		dao.GetLogger().Error("error in RemoveUserFromGroup", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func removeUserFromGroupInTransaction(tx *sqlx.Tx, username string, groupName string) error {
	_, err := tx.Exec(`delete from membership where groupName = ? and username = ?`,
		groupName, username)
	return err
}
