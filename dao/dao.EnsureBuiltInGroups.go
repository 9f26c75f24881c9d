package dao

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// EnsureBuiltInGroups creates the SiteAdmin, Admin and AllUsers groups if
// missing and seeds the singular SiteAdmin membership with siteAdmin when the
// group is empty. Run at startup; a database that already has the groups is
// left untouched.
func (dao *DataAccessLayer) EnsureBuiltInGroups(siteAdmin string) error {
	defer util.Time("EnsureBuiltInGroups")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = ensureBuiltInGroupsInTransaction(tx, siteAdmin)
	if err != nil {
		dao.GetLogger().Error("error in EnsureBuiltInGroups", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func ensureBuiltInGroupsInTransaction(tx *sqlx.Tx, siteAdmin string) error {
	for _, name := range []string{models.SiteAdminGroup, models.AdminGroup, models.EveryoneGroup} {
		_, err := getGroupByNameInTransaction(tx, name)
		if err == sql.ErrNoRows {
			group := models.Group{Name: name, IsBuiltIn: true, CreatedBy: siteAdmin}
			if _, err := createGroupInTransaction(tx, group, ""); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	if _, err := getUserByUsernameInTransaction(tx, siteAdmin); err == sql.ErrNoRows {
		seed := models.User{Username: siteAdmin, CreatedBy: siteAdmin}
		if _, err := createUserInTransaction(tx, seed); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int
	if err := tx.Get(&count, `select count(*) from membership where groupName = ?`,
		models.SiteAdminGroup); err != nil {
		return err
	}
	if count == 0 {
		if err := addUserToGroupInTransaction(tx, siteAdmin, models.SiteAdminGroup, siteAdmin); err != nil {
			return err
		}
	}
	return nil
}
