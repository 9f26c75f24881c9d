package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// RemoveClaims deletes every claim of the given types on one resource value
// for a principal. The caller passes the revoked level together with all the
// levels it implies upward; the whole set is deleted by a single statement in
// one transaction so the cleanup cannot interleave with a concurrent grant and
// leave a stale higher level behind. Removing claims that do not exist is a
// no-op success, so revocation is always safe to retry.
func (dao *DataAccessLayer) RemoveClaims(principal models.Principal, claimTypes []string, claimValue string) error {
	defer util.Time("RemoveClaims")()
	if len(claimTypes) == 0 {
		return nil
	}
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return err
	}
	err = removeClaimsInTransaction(tx, principal, claimTypes, claimValue)
	if err != nil {
		dao.GetLogger().Error("error in RemoveClaims", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return err
}

func removeClaimsInTransaction(tx *sqlx.Tx, principal models.Principal, claimTypes []string, claimValue string) error {
	query, args, err := sqlx.In(`
    delete from claim
    where principalKind = ? and principalName = ? and claimValue = ? and claimType in (?)
    `, principal.Kind, principal.Name, claimValue, claimTypes)
	if err != nil {
		return err
	}
	_, err = tx.Exec(tx.Rebind(query), args...)
	return err
}
