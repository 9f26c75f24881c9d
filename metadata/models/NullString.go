package models

import "database/sql"

// ToNullString wraps a string as a valid sql.NullString.
func ToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
