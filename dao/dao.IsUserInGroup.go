package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// IsUserInGroup reports whether the user is a current member of the group.
// Every user is implicitly a member of AllUsers.
func (dao *DataAccessLayer) IsUserInGroup(username string, groupName string) (bool, error) {
	defer util.Time("IsUserInGroup")()
	if groupName == models.EveryoneGroup {
		return true, nil
	}
	var count int
	err := dao.MetadataDB.Get(&count, `
    select count(*) from membership
    where groupName = ? and username = ?
    `, groupName, username)
	if err != nil {
		dao.GetLogger().Error("error in IsUserInGroup", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}
