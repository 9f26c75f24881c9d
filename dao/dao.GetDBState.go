package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetDBState retrieves the database state including schema version and identifier.
func (dao *DataAccessLayer) GetDBState() (models.DBState, error) {
	defer util.Time("GetDBState")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.DBState{}, err
	}
	response, err := getDBStateInTransaction(tx)
	if err != nil {
		dao.GetLogger().Error("error in GetDBState", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return response, err
}

func getDBStateInTransaction(tx *sqlx.Tx) (models.DBState, error) {
	var dbState models.DBState
	err := tx.Get(&dbState, `select createdDate, modifiedDate, schemaVersion, identifier from dbstate limit 1`)
	return dbState, err
}
