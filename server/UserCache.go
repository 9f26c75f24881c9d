package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

// FetchUser examines the context on the request, and retrieves the matching
// user either from cache, or from the database, creating the record as
// appropriate. Accounts are provisioned on first sight, the gateway already
// authenticated the identity.
func (h AppServer) FetchUser(ctx context.Context) (*models.User, error) {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("caller was not set on context")
	}
	d := DAOFromContext(ctx)

	if cacheItem := h.UsersLruCache.Get(caller.UserName); cacheItem != nil && !cacheItem.Expired() {
		user := cacheItem.Value().(models.User)
		return &user, nil
	}

	// Not found in cache, look up from database
	user, err := getOrCreateUser(d, caller)
	if err != nil {
		return nil, err
	}

	h.UsersLruCache.Set(caller.UserName, *user, time.Minute*10)

	return user, nil
}

// getOrCreateUser attempts to retrieve an existing user by their username. If
// no user is found, one more attempt is made to create the user; a concurrent
// provision by another request is not an error.
func getOrCreateUser(d dao.DAO, caller Caller) (*models.User, error) {

	existing, err := d.GetUserByUsername(caller.UserName)
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	newUser := models.User{
		Username:    caller.UserName,
		DisplayName: models.ToNullString(caller.CommonName),
		CreatedBy:   caller.UserName,
	}
	created, err := d.CreateUser(newUser)
	if err != nil {
		// the record may have been created by a concurrent request
		if existing, err2 := d.GetUserByUsername(caller.UserName); err2 == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &created, nil
}
