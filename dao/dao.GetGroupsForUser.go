package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetGroupsForUser retrieves the names of groups the user is a member of. The
// implicit AllUsers group is always included, without a membership row.
func (dao *DataAccessLayer) GetGroupsForUser(username string) ([]string, error) {
	defer util.Time("GetGroupsForUser")()
	var groups []string
	err := dao.MetadataDB.Select(&groups, `
    select groupName from membership
    where username = ?
    order by groupName
    `, username)
	if err != nil {
		dao.GetLogger().Error("error in GetGroupsForUser", zap.Error(err))
		return nil, err
	}
	return append(groups, models.EveryoneGroup), nil
}
