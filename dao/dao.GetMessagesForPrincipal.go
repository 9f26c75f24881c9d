package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetMessagesForPrincipal retrieves messages addressed directly to the user
// and to any of the groups the user belongs to, newest first.
func (dao *DataAccessLayer) GetMessagesForPrincipal(username string, groups []string) ([]models.Message, error) {
	defer util.Time("GetMessagesForPrincipal")()
	if len(groups) == 0 {
		groups = []string{models.EveryoneGroup}
	}
	query, args, err := sqlx.In(`
    select
        id
        ,recipientKind
        ,recipientName
        ,body
        ,createdDate
        ,createdBy
    from message
    where (recipientKind = ? and recipientName = ?)
       or (recipientKind = ? and recipientName in (?))
    order by createdDate desc, id desc
    `, models.KindUser, username, models.KindGroup, groups)
	if err != nil {
		return nil, err
	}
	var messages []models.Message
	err = dao.MetadataDB.Select(&messages, dao.MetadataDB.Rebind(query), args...)
	if err != nil {
		dao.GetLogger().Error("error in GetMessagesForPrincipal", zap.Error(err))
		return nil, err
	}
	return messages, nil
}
