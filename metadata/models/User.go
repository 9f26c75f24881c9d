package models

import (
	"database/sql"
	"time"
)

// User is a known account in the system. Locked users fail every
// authorization check.
type User struct {
	// ID is the database surrogate key
	ID int64 `db:"id"`
	// Username is the stable unique identity of the user
	Username string `db:"username"`
	// DisplayName is an optional friendly name
	DisplayName sql.NullString `db:"displayName"`
	// Email is the address invite mail is delivered to, when known
	Email sql.NullString `db:"email"`
	// Locked denies all authorization when set. Only admins toggle this.
	Locked bool `db:"locked"`
	// CreatedDate is when the user record was first provisioned
	CreatedDate time.Time `db:"createdDate"`
	// CreatedBy identifies who provisioned the record
	CreatedBy string `db:"createdBy"`
	// ModifiedDate is when the record last changed
	ModifiedDate time.Time `db:"modifiedDate"`
	// ModifiedBy identifies who last changed the record
	ModifiedBy string `db:"modifiedBy"`
}
