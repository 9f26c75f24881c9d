package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetClaimsForResource retrieves every claim stored against one resource
// value, across all principals. This backs the current-shares query.
func (dao *DataAccessLayer) GetClaimsForResource(claimValue string) ([]models.Claim, error) {
	defer util.Time("GetClaimsForResource")()
	var claims []models.Claim
	err := dao.MetadataDB.Select(&claims, `
    select
        id
        ,principalKind
        ,principalName
        ,claimType
        ,claimValue
        ,createdDate
        ,createdBy
    from claim
    where claimValue = ?
    order by principalKind, principalName, claimType
    `, claimValue)
	if err != nil {
		dao.GetLogger().Error("error in GetClaimsForResource", zap.Error(err))
		return nil, err
	}
	return claims, nil
}
