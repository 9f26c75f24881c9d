package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// AddClaim attaches a (type, value) claim to a principal. Adding a claim that
// already exists is a no-op success. Exactly the requested claim is stored;
// no implied levels are materialized at grant time.
func (dao *DataAccessLayer) AddClaim(principal models.Principal, claimType string, claimValue string, createdBy string) error {
	defer util.Time("AddClaim")()
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = addClaimInTransaction(tx, principal, claimType, claimValue, createdBy)
	if err != nil {
		dao.GetLogger().Error("error in AddClaim", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func addClaimInTransaction(tx *sqlx.Tx, principal models.Principal, claimType string, claimValue string, createdBy string) error {
	var count int
	err := tx.Get(&count, `
    select count(*) from claim
    where principalKind = ? and principalName = ? and claimType = ? and claimValue = ?
    `, principal.Kind, principal.Name, claimType, claimValue)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = tx.Exec(`insert claim set
        principalKind = ?
        ,principalName = ?
        ,claimType = ?
        ,claimValue = ?
        ,createdBy = ?
    `, principal.Kind, principal.Name, claimType, claimValue, createdBy)
	return err
}
