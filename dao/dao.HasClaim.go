package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// HasClaim reports whether the principal directly holds the exact claim.
func (dao *DataAccessLayer) HasClaim(principal models.Principal, claimType string, claimValue string) (bool, error) {
	defer util.Time("HasClaim")()
	var count int
	err := dao.MetadataDB.Get(&count, `
    select count(*) from claim
    where principalKind = ? and principalName = ? and claimType = ? and claimValue = ?
    `, principal.Kind, principal.Name, claimType, claimValue)
	if err != nil {
		dao.GetLogger().Error("error in HasClaim", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}
