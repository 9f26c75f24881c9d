package dao

import (
	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/util"
)

// GetClaimsForPrincipal retrieves the claims directly attached to a principal.
func (dao *DataAccessLayer) GetClaimsForPrincipal(principal models.Principal) ([]models.Claim, error) {
	defer util.Time("GetClaimsForPrincipal")()
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
    where principalKind = ? and principalName = ?
    order by claimValue, claimType
    `, principal.Kind, principal.Name)
	if err != nil {
		dao.GetLogger().Error("error in GetClaimsForPrincipal", zap.Error(err))
		return nil, err
	}
	return claims, nil
}
