package dao

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// SetUserLocked updates the lockout state for a user. A locked user fails every
// authorization check until unlocked.
func (dao *DataAccessLayer) SetUserLocked(username string, locked bool, modifiedBy string) error {
	defer util.Time("SetUserLocked")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = setUserLockedInTransaction(tx, username, locked, modifiedBy)
	if err != nil {
		dao.GetLogger().Error("error in SetUserLocked", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func setUserLockedInTransaction(tx *sqlx.Tx, username string, locked bool, modifiedBy string) error {
	result, err := tx.Exec(`update user set locked = ?, modifiedBy = ? where username = ?`,
		locked, modifiedBy, username)
	if err != nil {
		return err
	}
	rowCount, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowCount == 0 {
		// distinguish unknown user from an update that changed nothing
		var id int64
		if err := tx.Get(&id, `select id from user where username = ?`, username); err != nil {
			return sql.ErrNoRows
		}
	}
	return nil
}
