package models

import "time"

// DBState reflects the dbstate table, identifying the database instance and
// the schema version it was created with.
type DBState struct {
	CreatedDate   time.Time `db:"createdDate"`
	ModifiedDate  time.Time `db:"modifiedDate"`
	SchemaVersion string    `db:"schemaVersion"`
	Identifier    string    `db:"identifier"`
}
