package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetUserByUsername looks up a user record by their unique username. Absence
// surfaces as sql.ErrNoRows for the caller to interpret.
func (dao *DataAccessLayer) GetUserByUsername(username string) (models.User, error) {
	defer util.Time("GetUserByUsername")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.User{}, err
	}
	response, err := getUserByUsernameInTransaction(tx, username)
	if err != nil {
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getUserByUsernameInTransaction(tx *sqlx.Tx, username string) (models.User, error) {
	var dbUser models.User
	err := tx.Get(&dbUser, `
    select
        id
        ,username
        ,displayName
        ,email
        ,locked
        ,createdDate
        ,createdBy
        ,modifiedDate
        ,modifiedBy
    from user
    where username = ?
    `, username)
	return dbUser, err
}
