package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "", "")
	assert.Error(t, err)
}

func TestMigrate_SQLiteMemory(t *testing.T) {
	gormDB, err := Open("sqlite", "", ":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB, false))
	assert.True(t, gormDB.Migrator().HasTable(&model.User{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.Spot{}))

	require.NoError(t, gormDB.Create(&model.User{Name: "n", Email: "x@y.com", PasswordHash: "h"}).Error)
	require.NoError(t, Migrate(gormDB, true))

	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_time_format=sqlite", sqliteDSN(":memory:"))
	assert.Equal(t, "/tmp/x.db?mode=ro", sqliteDSN("/tmp/x.db?mode=ro"))
}

func TestMySQLDSN_CountsMatchedRows(t *testing.T) {
	dsn, err := mysqlDSN("user:pw@tcp(localhost:3306)/parking?charset=utf8mb4")
	require.NoError(t, err)

	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "tcp(localhost:3306)/parking")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestMySQLDSN_Invalid(t *testing.T) {
	_, err := mysqlDSN("not a dsn")
	assert.Error(t, err)
}
