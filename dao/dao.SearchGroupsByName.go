package dao

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// SearchGroupsByName returns the single best group name matching a partial
// prefix, or the empty string when nothing matches.
func (dao *DataAccessLayer) SearchGroupsByName(partial string) (string, error) {
	defer util.Time("SearchGroupsByName")()
	var name string
	err := dao.MetadataDB.Get(&name, `
    select name from usergroup
    where name like ?
    order by name
    limit 1
    `, escapeLikePrefix(partial))
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		dao.GetLogger().Error("error in SearchGroupsByName", zap.Error(err))
		return "", err
	}
	return name, nil
}
