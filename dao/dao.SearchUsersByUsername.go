package dao

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/util"
)

// SearchUsersByUsername returns the single best username matching a partial
// prefix, or the empty string when nothing matches. Completion lookups are
// best effort and never an error to miss.
func (dao *DataAccessLayer) SearchUsersByUsername(partial string) (string, error) {
	defer util.Time("SearchUsersByUsername")()
	var username string
	err := dao.MetadataDB.Get(&username, `
    select username from user
    where username like ?
    order by username
    limit 1
    `, escapeLikePrefix(partial))
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		dao.GetLogger().Error("error in SearchUsersByUsername", zap.Error(err))
		return "", err
	}
	return username, nil
}

// escapeLikePrefix converts a raw partial into a prefix LIKE pattern with any
// wildcard characters in the input neutralized.
func escapeLikePrefix(partial string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(partial) + "%"
}
