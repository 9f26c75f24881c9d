package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// CreateUser adds the passed in user to the database. Once added, the record is
// retrieved and the user passed in by reference is updated with the remaining
// attributes.
func (dao *DataAccessLayer) CreateUser(user models.User) (models.User, error) {
	defer util.Time("CreateUser")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.User{}, err
	}
	response, err := createUserInTransaction(tx, user)
	if err != nil {
		dao.GetLogger().Error("error in CreateUser", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func createUserInTransaction(tx *sqlx.Tx, user models.User) (models.User, error) {
	var dbUser models.User
	addUserStatement, err := tx.Preparex(`insert user set
        username = ?
        ,displayName = ?
        ,email = ?
        ,locked = ?
        ,createdBy = ?
        ,modifiedBy = ?
    `)
	if err != nil {
		return dbUser, err
	}
	defer addUserStatement.Close()
	if _, err := addUserStatement.Exec(user.Username, user.DisplayName, user.Email,
		user.Locked, user.CreatedBy, user.CreatedBy); err != nil {
		return dbUser, err
	}
	return getUserByUsernameInTransaction(tx, user.Username)
}
