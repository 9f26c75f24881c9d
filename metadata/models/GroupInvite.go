package models

import "time"

// GroupInvite is a pending email-confirmed membership offer. The token travels
// in the callback URL mailed to the invitee and completes the join when
// presented before the expiry.
type GroupInvite struct {
	ID          int64     `db:"id"`
	Token       string    `db:"token"`
	GroupName   string    `db:"groupName"`
	Username    string    `db:"username"`
	Accepted    bool      `db:"accepted"`
	CreatedDate time.Time `db:"createdDate"`
	CreatedBy   string    `db:"createdBy"`
	ExpiresDate time.Time `db:"expiresDate"`
}
