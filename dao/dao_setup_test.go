package dao_test

import (
	"log"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NiubilityNetCore/claim-share-server/config"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

var db *sqlx.DB
var d *dao.DataAccessLayer

// DAO tests hit a locally-running database directly, configured through the
// CS_DB_* environment variables. Run with -short to skip them.
func init() {
	dbConfig := config.DatabaseConfiguration{
		Driver:       "mysql",
		Username:     config.GetEnvOrDefault("CS_DB_USERNAME", "claimshare"),
		Password:     config.GetEnvOrDefault("CS_DB_PASSWORD", ""),
		Protocol:     "tcp",
		Host:         config.GetEnvOrDefault("CS_DB_HOST", "127.0.0.1"),
		Port:         config.GetEnvOrDefault("CS_DB_PORT", "3306"),
		Schema:       config.GetEnvOrDefault("CS_DB_SCHEMA", "claimshare"),
		Params:       "parseTime=true&collation=utf8_general_ci",
		MaxIdleConns: 2,
		MaxOpenConns: 5,
	}

	var err error
	db, err = dbConfig.GetDatabaseHandle()
	if err != nil {
		log.Printf("could not open database handle for dao tests: %v", err)
		return
	}
	d = &dao.DataAccessLayer{MetadataDB: db, Logger: config.RootLogger}
}

// testName suffixes a prefix with nanoseconds so reruns against a persistent
// database do not collide.
func testName(prefix string) string {
	return prefix + strconv.Itoa(time.Now().UTC().Nanosecond())
}

func makeDAOTestUser(t *testing.T, prefix string) models.User {
	t.Helper()
	username := testName(prefix)
	user, err := d.CreateUser(models.User{Username: username, CreatedBy: username})
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}
