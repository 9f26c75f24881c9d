package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetUsers returns all users in the database.
func (dao *DataAccessLayer) GetUsers() ([]models.User, error) {
	defer util.Time("GetUsers")()
	var users []models.User
	err := dao.MetadataDB.Select(&users, `
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
    order by username
    `)
	if err != nil {
		dao.GetLogger().Error("error in GetUsers", zap.Error(err))
	}
	return users, err
}
