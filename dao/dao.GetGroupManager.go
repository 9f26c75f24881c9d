package dao

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetGroupManager returns the username holding the GroupManager claim for a
// group, or the empty string when the group has no manager. Only the two
// built in administrative groups are ever managerless.
func (dao *DataAccessLayer) GetGroupManager(groupName string) (string, error) {
	defer util.Time("GetGroupManager")()
	var manager string
	err := dao.MetadataDB.Get(&manager, `
    select principalName from claim
    where principalKind = ? and claimType = ? and claimValue = ?
    limit 1
    `, models.KindUser, models.ClaimGroupManager, groupName)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		dao.GetLogger().Error("error in GetGroupManager", zap.Error(err))
		return "", err
	}
	return manager, nil
}
