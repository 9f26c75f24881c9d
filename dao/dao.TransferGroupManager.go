package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// TransferGroupManager atomically moves the GroupManager claim for a group to
// a new user. The existing claim row is locked, deleted and replaced within a
// single transaction so no concurrent resolver ever observes zero or two
// managers. When enroll is set the new manager is added as a member first,
// which is the administrative bypass for transferring to a non-member.
func (dao *DataAccessLayer) TransferGroupManager(groupName string, newManager string, modifiedBy string, enroll bool) error {
	defer util.Time("TransferGroupManager")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = transferGroupManagerInTransaction(tx, groupName, newManager, modifiedBy, enroll)
	if err != nil {
		dao.GetLogger().Error("error in TransferGroupManager", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func transferGroupManagerInTransaction(tx *sqlx.Tx, groupName string, newManager string, modifiedBy string, enroll bool) error {
	// lock the manager claim rows for this group to serialize competing transfers
	var holders []string
	err := tx.Select(&holders, `
    select principalName from claim
    where principalKind = ? and claimType = ? and claimValue = ?
    for update
    `, models.KindUser, models.ClaimGroupManager, groupName)
	if err != nil {
		return err
	}
	if enroll {
		if err := addUserToGroupInTransaction(tx, newManager, groupName, modifiedBy); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`delete from claim where principalKind = ? and claimType = ? and claimValue = ?`,
		models.KindUser, models.ClaimGroupManager, groupName); err != nil {
		return err
	}
	return addClaimInTransaction(tx, models.UserPrincipal(newManager),
		models.ClaimGroupManager, groupName, modifiedBy)
}
