package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// CreateGroupInvite stores a pending invite and returns the stored record.
func (dao *DataAccessLayer) CreateGroupInvite(invite models.GroupInvite) (models.GroupInvite, error) {
	defer util.Time("CreateGroupInvite")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.GroupInvite{}, err
	}
	response, err := createGroupInviteInTransaction(tx, invite)
	if err != nil {
		dao.GetLogger().Error("error in CreateGroupInvite", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func createGroupInviteInTransaction(tx *sqlx.Tx, invite models.GroupInvite) (models.GroupInvite, error) {
	var dbInvite models.GroupInvite
	_, err := tx.Exec(`insert group_invite set
        token = ?
        ,groupName = ?
        ,username = ?
        ,createdBy = ?
        ,expiresDate = ?
    `, invite.Token, invite.GroupName, invite.Username, invite.CreatedBy, invite.ExpiresDate)
	if err != nil {
		return dbInvite, err
	}
	err = tx.Get(&dbInvite, `
    select id, token, groupName, username, accepted, createdDate, createdBy, expiresDate
    from group_invite
    where token = ?
    `, invite.Token)
	return dbInvite, err
}
