package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetMembersOfGroup retrieves the usernames enrolled in a group.
func (dao *DataAccessLayer) GetMembersOfGroup(groupName string) ([]string, error) {
	defer util.Time("GetMembersOfGroup")()
	var members []string
	err := dao.MetadataDB.Select(&members, `
    select username from membership
    where groupName = ?
    order by username
    `, groupName)
	if err != nil {
		dao.GetLogger().Error("error in GetMembersOfGroup", zap.Error(err))
		return nil, err
	}
	return members, nil
}
