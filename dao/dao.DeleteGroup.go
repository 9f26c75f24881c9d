package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// DeleteGroup removes a group and everything attached to it as an explicit,
// ordered script inside one transaction: messages addressed to the group,
// pending invites, memberships, the manager claim, claims held by the group
// itself, and finally the group row. A failure at any step rolls the whole
// operation back.
func (dao *DataAccessLayer) DeleteGroup(name string) error {
	defer util.Time("DeleteGroup")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = deleteGroupInTransaction(tx, name)
	if err != nil {
		dao.GetLogger().Error("error in DeleteGroup", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func deleteGroupInTransaction(tx *sqlx.Tx, name string) error {
	if _, err := tx.Exec(`delete from message where recipientKind = ? and recipientName = ?`,
		models.KindGroup, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`delete from group_invite where groupName = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`delete from membership where groupName = ?`, name); err != nil {
		return err
	}
	// the manager claim lives on a user principal with the group name as value
	if _, err := tx.Exec(`delete from claim where claimType = ? and claimValue = ?`,
		models.ClaimGroupManager, name); err != nil {
		return err
	}
	// claims granted to the group as a principal
	if _, err := tx.Exec(`delete from claim where principalKind = ? and principalName = ?`,
		models.KindGroup, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`delete from usergroup where name = binary ?`, name); err != nil {
		return err
	}
	return nil
}
