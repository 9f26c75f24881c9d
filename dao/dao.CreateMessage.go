package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// CreateMessage persists a system notification addressed to a user or a group.
// Callers issue this only after the transaction that authorized the change has
// committed.
func (dao *DataAccessLayer) CreateMessage(message models.Message) error {
	defer util.Time("CreateMessage")()
	_, err := dao.MetadataDB.Exec(`insert message set
        recipientKind = ?
        ,recipientName = ?
        ,body = ?
        ,createdBy = ?
    `, message.RecipientKind, message.RecipientName, message.Body, message.CreatedBy)
	if err != nil {
		dao.GetLogger().Error("error in CreateMessage", zap.Error(err))
	}
	return err
}
