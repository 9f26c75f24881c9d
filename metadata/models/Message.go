package models

import "time"

// Message is a system generated notification addressed to a user or to all
// members of a group.
type Message struct {
	ID            int64         `db:"id"`
	RecipientKind PrincipalKind `db:"recipientKind"`
	RecipientName string        `db:"recipientName"`
	Body          string        `db:"body"`
	CreatedDate   time.Time     `db:"createdDate"`
	CreatedBy     string        `db:"createdBy"`
}
