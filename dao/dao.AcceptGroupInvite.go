package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// AcceptGroupInvite completes an email-confirmed join. The invite row is
// locked and checked to be pending and unexpired, marked accepted, and the
// membership inserted, all in one transaction. An unknown, expired or already
// accepted token surfaces as sql.ErrNoRows.
func (dao *DataAccessLayer) AcceptGroupInvite(token string) (models.GroupInvite, error) {
	defer util.Time("AcceptGroupInvite")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.GroupInvite{}, err
	}
	response, err := acceptGroupInviteInTransaction(tx, token)
	if err != nil {
		dao.GetLogger().Error("error in AcceptGroupInvite", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func acceptGroupInviteInTransaction(tx *sqlx.Tx, token string) (models.GroupInvite, error) {
	var invite models.GroupInvite
	err := tx.Get(&invite, `
    select id, token, groupName, username, accepted, createdDate, createdBy, expiresDate
    from group_invite
    where token = ? and accepted = 0 and expiresDate > now()
    for update
    `, token)
	if err != nil {
		return models.GroupInvite{}, err
	}
	if _, err := tx.Exec(`update group_invite set accepted = 1 where id = ?`, invite.ID); err != nil {
		return models.GroupInvite{}, err
	}
	if err := addUserToGroupInTransaction(tx, invite.Username, invite.GroupName, invite.CreatedBy); err != nil {
		return models.GroupInvite{}, err
	}
	invite.Accepted = true
	return invite, nil
}
