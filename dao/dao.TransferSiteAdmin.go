package dao

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// ErrSiteAdminHolder is returned when the SiteAdmin membership does not hold
// exactly one user at transfer time, or when the caller is no longer that user
// because a competing transfer won.
var ErrSiteAdminHolder = errors.New("dao: site admin membership is not held as expected")

// TransferSiteAdmin atomically moves the singular SiteAdmin membership from
// its current holder to newAdmin. The membership rows are locked for the
// duration of the transaction; competing transfers serialize and the loser
// fails with ErrSiteAdminHolder, so the group never has zero or two members.
func (dao *DataAccessLayer) TransferSiteAdmin(newAdmin string, modifiedBy string) error {
	defer util.Time("TransferSiteAdmin")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = transferSiteAdminInTransaction(tx, newAdmin, modifiedBy)
	if err != nil {
		dao.GetLogger().Error("error in TransferSiteAdmin", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func transferSiteAdminInTransaction(tx *sqlx.Tx, newAdmin string, modifiedBy string) error {
	var holders []string
	err := tx.Select(&holders, `
    select username from membership
    where groupName = ?
    for update
    `, models.SiteAdminGroup)
	if err != nil {
		return err
	}
	if len(holders) != 1 {
		return ErrSiteAdminHolder
	}
	if holders[0] != modifiedBy {
		// a competing transfer already moved the membership
		return ErrSiteAdminHolder
	}
	if holders[0] == newAdmin {
		return nil
	}
	if _, err := tx.Exec(`delete from membership where groupName = ? and username = ?`,
		models.SiteAdminGroup, holders[0]); err != nil {
		return err
	}
	_, err = tx.Exec(`insert membership set groupName = ?, username = ?, createdBy = ?`,
		models.SiteAdminGroup, newAdmin, modifiedBy)
	return err
}
